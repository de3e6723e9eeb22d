package session

import (
	"fmt"
	"io"

	"github.com/KaramelBytes/calview-cli/internal/dataset"
	"github.com/KaramelBytes/calview-cli/internal/export"
	"github.com/KaramelBytes/calview-cli/internal/selection"
	"github.com/KaramelBytes/calview-cli/internal/summary"
	"github.com/KaramelBytes/calview-cli/internal/variables"
)

// Session owns the ambient state of one interactive run: the source path,
// filter text, color scheme, the last operation error, and the current load
// generation (dataset, registry, selection, stats). All mutations are
// synchronous responses to one triggering operation; there is no concurrent
// access to worry about.
type Session struct {
	Path       string
	FilterText string
	Dark       bool

	// LastError is the human-readable message of the most recent failed
	// operation, cleared by the next successful one.
	LastError string

	ds    *dataset.Dataset
	reg   *variables.Registry
	sel   *selection.State
	stats *summary.Stats
}

// New returns an empty session. Nothing is loaded until Load succeeds.
func New() *Session { return &Session{} }

// DarkMode implements export.ThemeProvider.
func (s *Session) DarkMode() bool { return s.Dark }

// Loaded reports whether a generation is live.
func (s *Session) Loaded() bool { return s.ds != nil }

// Dataset returns the live dataset, nil before the first successful load.
func (s *Session) Dataset() *dataset.Dataset { return s.ds }

// Registry returns the live variable registry.
func (s *Session) Registry() *variables.Registry { return s.reg }

// Selection returns the live selection state.
func (s *Session) Selection() *selection.State { return s.sel }

// Stats returns the per-load summary statistics.
func (s *Session) Stats() *summary.Stats { return s.stats }

// Load parses path and, on success, atomically replaces the dataset,
// registry, selection state, and summary statistics together. Selection is
// reset to all-false because variable indices are not stable across loads.
// On failure the previous generation stays fully intact and the error is
// recorded as LastError.
func (s *Session) Load(path string, opts dataset.Options) error {
	ds, err := dataset.Load(path, opts)
	if err != nil {
		s.LastError = err.Error()
		return err
	}
	reg := variables.Classify(ds.Columns)
	stats := summary.Compute(ds)

	s.Path = path
	s.ds = ds
	s.reg = reg
	s.sel = selection.New(reg)
	s.stats = stats
	s.LastError = ""
	return nil
}

// Reload re-parses the current path with the same atomic-replace semantics.
func (s *Session) Reload(opts dataset.Options) error {
	if s.Path == "" {
		err := fmt.Errorf("no file loaded")
		s.LastError = err.Error()
		return err
	}
	return s.Load(s.Path, opts)
}

// Filtered returns the variables visible under the session filter text.
func (s *Session) Filtered() []*variables.Variable {
	if s.sel == nil {
		return nil
	}
	return s.sel.Filtered(s.FilterText)
}

func (s *Session) selected() ([]*variables.Variable, error) {
	if !s.Loaded() {
		return nil, fmt.Errorf("no file loaded")
	}
	return s.reg.Selected(), nil
}

// ExportCSV writes the selected variables' series of the given kind. Export
// failures are recorded as LastError but never touch the live generation.
func (s *Session) ExportCSV(w io.Writer, kind export.Kind) error {
	vars, err := s.selected()
	if err == nil {
		err = export.WriteCSV(w, s.ds, vars, kind)
	}
	return s.record(err)
}

// ExportChart renders the selected variables' series as a PNG, using the
// session as the theme provider.
func (s *Session) ExportChart(w io.Writer, kind export.Kind, opts export.ChartOptions) error {
	vars, err := s.selected()
	if err == nil {
		if opts.Theme == nil {
			opts.Theme = s
		}
		err = export.RenderChart(w, s.ds, vars, kind, opts)
	}
	return s.record(err)
}

// ExportXLSX writes the workbook export for the selected variables.
func (s *Session) ExportXLSX(w io.Writer, kind export.Kind) error {
	vars, err := s.selected()
	if err == nil {
		err = export.WriteXLSX(w, s.ds, vars, kind, s.stats)
	}
	return s.record(err)
}

func (s *Session) record(err error) error {
	if err != nil {
		s.LastError = err.Error()
	}
	return err
}
