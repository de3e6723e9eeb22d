package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/KaramelBytes/calview-cli/internal/dataset"
	"github.com/KaramelBytes/calview-cli/internal/variables"
)

// WriteCSV writes the requested series of the selected variables: a header
// row Iteration,<Var>_<Kind>,... then one row per record in dataset order. A
// record lacking a column gets a blank cell; a variable lacking the requested
// kind is skipped entirely.
func WriteCSV(w io.Writer, ds *dataset.Dataset, vars []*variables.Variable, kind Kind) error {
	cols := make([]string, 0, len(vars))
	header := []string{dataset.IterationColumn}
	for _, v := range vars {
		col := kind.column(v)
		if col == "" {
			continue
		}
		cols = append(cols, col)
		header = append(header, fmt.Sprintf("%s_%s", v.Name, kind))
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	row := make([]string, len(header))
	for _, r := range ds.Records {
		row[0] = strconv.Itoa(r.Iteration)
		for i, col := range cols {
			if v, ok := r.Fields[col]; ok {
				row[i+1] = strconv.FormatFloat(v, 'g', -1, 64)
			} else {
				row[i+1] = ""
			}
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}
