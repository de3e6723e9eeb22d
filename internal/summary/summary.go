package summary

import (
	"fmt"
	"math"
	"sort"

	"github.com/KaramelBytes/calview-cli/internal/dataset"
	"github.com/KaramelBytes/calview-cli/internal/variables"
)

// RankedError is one entry of the final-error ranking: an error column and
// the absolute value it holds in the last record.
type RankedError struct {
	Column    string
	Magnitude float64
}

// TrendPoint is the summed absolute error of one record.
type TrendPoint struct {
	Iteration int
	Total     float64
}

// Stats holds the summaries derived from one load. Compute runs once per
// load; everything here is O(1) to serve afterwards.
type Stats struct {
	Ranking []RankedError
	Trend   []TrendPoint
}

// Compute derives the final-error ranking and the total-error trend from the
// dataset. Error columns are taken from ds.Columns in original column order,
// which also breaks ranking ties deterministically.
func Compute(ds *dataset.Dataset) *Stats {
	var errCols []string
	for _, col := range ds.Columns {
		if variables.IsErrorColumn(col) {
			errCols = append(errCols, col)
		}
	}

	s := &Stats{}
	if last, ok := ds.Last(); ok {
		for _, col := range errCols {
			if v, present := last.Fields[col]; present {
				s.Ranking = append(s.Ranking, RankedError{Column: col, Magnitude: math.Abs(v)})
			}
		}
		// Stable sort keeps original column order on magnitude ties.
		sort.SliceStable(s.Ranking, func(i, j int) bool {
			return s.Ranking[i].Magnitude > s.Ranking[j].Magnitude
		})
	}

	s.Trend = make([]TrendPoint, len(ds.Records))
	for i, r := range ds.Records {
		var total float64
		for _, col := range errCols {
			if v, present := r.Fields[col]; present {
				total += math.Abs(v) // absent columns contribute 0
			}
		}
		s.Trend[i] = TrendPoint{Iteration: r.Iteration, Total: total}
	}
	return s
}

// PercentChange returns the relative drop in total error from the first to
// the last trend point, in percent. ok is false when the trend is empty or
// the first total is zero, where the figure is undefined.
func (s *Stats) PercentChange() (pct float64, ok bool) {
	if len(s.Trend) == 0 {
		return 0, false
	}
	first := s.Trend[0].Total
	last := s.Trend[len(s.Trend)-1].Total
	if first == 0 {
		return 0, false
	}
	return (first - last) / first * 100, true
}

// FormatPercentChange renders the percent change for display, substituting
// "n/a" when the zero-baseline case makes it undefined.
func (s *Stats) FormatPercentChange() string {
	pct, ok := s.PercentChange()
	if !ok {
		return "n/a"
	}
	return fmt.Sprintf("%.1f%%", pct)
}
