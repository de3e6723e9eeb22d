package cmd

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/KaramelBytes/calview-cli/internal/export"
	"github.com/KaramelBytes/calview-cli/internal/utils"
	"github.com/spf13/cobra"
)

var (
	expKind   string
	expVars   string
	expFormat string
	expOutput string
	expXMin   float64
	expXMax   float64
	expYMin   float64
	expYMax   float64
)

var exportCmd = &cobra.Command{
	Use:   "export <file>",
	Short: "Export selected series as CSV, XLSX, or a PNG chart",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, err := export.ParseKind(expKind)
		if err != nil {
			return err
		}
		format := strings.ToLower(expFormat)
		switch format {
		case "csv", "xlsx", "png":
		default:
			return fmt.Errorf("unsupported --format: %s (use csv, xlsx, or png)", expFormat)
		}

		s := newSession()
		if err := s.Load(args[0], loadOptions()); err != nil {
			return err
		}
		// The --vars terms reuse the filter predicate; empty selects all.
		s.FilterText = expVars
		s.Selection().SelectAllFiltered(expVars)
		if s.Selection().SelectedCount() == 0 {
			return fmt.Errorf("no variables match %q", expVars)
		}

		var buf bytes.Buffer
		switch format {
		case "csv":
			err = s.ExportCSV(&buf, kind)
		case "xlsx":
			err = s.ExportXLSX(&buf, kind)
		case "png":
			opts := export.ChartOptions{}
			if cfg != nil {
				opts.Width = cfg.ChartWidth
				opts.Height = cfg.ChartHeight
			}
			opts.Bounds, err = chartBounds(cmd)
			if err != nil {
				return err
			}
			err = s.ExportChart(&buf, kind, opts)
		}
		if err != nil {
			return err
		}

		out := expOutput
		if out == "" {
			base := strings.TrimSuffix(s.Dataset().Name, filepath.Ext(s.Dataset().Name))
			out = fmt.Sprintf("%s_%s.%s", base, strings.ToLower(string(kind)), format)
			if cfg != nil && cfg.ExportDir != "" {
				if err := utils.EnsureDir(cfg.ExportDir); err != nil {
					return fmt.Errorf("ensure export dir: %w", err)
				}
				out = filepath.Join(cfg.ExportDir, out)
			}
		}
		if err := utils.SafeWriteFile(out, buf.Bytes()); err != nil {
			return fmt.Errorf("write export: %w", err)
		}
		fmt.Printf("✓ Wrote %d series rows to %s\n", len(s.Dataset().Records), out)
		return nil
	},
}

// chartBounds builds explicit plot bounds when all four flags are set;
// setting only some of them is an error rather than a guess.
func chartBounds(cmd *cobra.Command) (*export.Bounds, error) {
	f := cmd.Flags()
	set := 0
	for _, name := range []string{"x-min", "x-max", "y-min", "y-max"} {
		if f.Changed(name) {
			set++
		}
	}
	switch set {
	case 0:
		return nil, nil
	case 4:
		return &export.Bounds{XMin: expXMin, XMax: expXMax, YMin: expYMin, YMax: expYMax}, nil
	default:
		return nil, fmt.Errorf("set all of --x-min --x-max --y-min --y-max, or none")
	}
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVarP(&expKind, "kind", "k", "", "series kind to export: error | value (required)")
	exportCmd.Flags().StringVar(&expVars, "vars", "", "comma-separated variable terms to select (empty selects all)")
	exportCmd.Flags().StringVar(&expFormat, "format", "csv", "output format: csv | xlsx | png")
	exportCmd.Flags().StringVarP(&expOutput, "output", "o", "", "output path (default <file>_<kind>.<format>)")
	exportCmd.Flags().Float64Var(&expXMin, "x-min", 0, "chart: visible x-axis minimum")
	exportCmd.Flags().Float64Var(&expXMax, "x-max", 0, "chart: visible x-axis maximum")
	exportCmd.Flags().Float64Var(&expYMin, "y-min", 0, "chart: visible y-axis minimum")
	exportCmd.Flags().Float64Var(&expYMax, "y-max", 0, "chart: visible y-axis maximum")
	_ = exportCmd.MarkFlagRequired("kind")
}
