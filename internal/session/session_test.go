package session_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/KaramelBytes/calview-cli/internal/dataset"
	"github.com/KaramelBytes/calview-cli/internal/export"
	"github.com/KaramelBytes/calview-cli/internal/session"
)

func writeLog(t *testing.T, name string, rows ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(strings.Join(rows, "\n")+"\n"), 0o644); err != nil {
		t.Fatalf("write log: %v", err)
	}
	return path
}

func TestLoadPopulatesGeneration(t *testing.T) {
	s := session.New()
	path := writeLog(t, "a.csv",
		"Iteration,Error:X,Value:X,Error:Y",
		"0,2.0,10.0,-1.0",
		"1,1.0,11.0,-0.5",
	)
	if err := s.Load(path, dataset.Options{}); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !s.Loaded() || s.LastError != "" {
		t.Fatalf("loaded=%v lastError=%q", s.Loaded(), s.LastError)
	}
	if got := s.Registry().Names(); len(got) != 2 || got[0] != "X" || got[1] != "Y" {
		t.Fatalf("names = %v", got)
	}
	if s.Selection().SelectedCount() != 0 {
		t.Fatalf("fresh load must start unselected")
	}
	if got := s.Stats().FormatPercentChange(); got != "50.0%" {
		t.Fatalf("percent change = %q", got)
	}
}

func TestReloadReplacesAllDerivedStructures(t *testing.T) {
	s := session.New()
	path := writeLog(t, "a.csv",
		"Iteration,Error:X,Value:X",
		"0,2.0,10.0",
	)
	if err := s.Load(path, dataset.Options{}); err != nil {
		t.Fatalf("Load: %v", err)
	}
	s.Selection().SelectAllFiltered("")
	if s.Selection().SelectedCount() != 1 {
		t.Fatalf("selection setup failed")
	}
	oldID := s.Dataset().ID

	// Structurally different column set on reload.
	if err := os.WriteFile(path, []byte("Iteration,Error:A,Error:B,Value:C\n0,1,2,3\n1,0.5,1,4\n"), 0o644); err != nil {
		t.Fatalf("rewrite: %v", err)
	}
	if err := s.Reload(dataset.Options{}); err != nil {
		t.Fatalf("Reload: %v", err)
	}
	if s.Dataset().ID == oldID {
		t.Fatalf("reload must mint a new generation")
	}
	if got := s.Registry().Names(); len(got) != 3 || got[0] != "A" {
		t.Fatalf("names = %v, want [A B C]", got)
	}
	if s.Selection().SelectedCount() != 0 {
		t.Fatalf("selection must reset to all-false on reload")
	}
	if len(s.Stats().Trend) != 2 {
		t.Fatalf("stats not recomputed: %v", s.Stats().Trend)
	}
}

func TestFailedLoadPreservesPriorGeneration(t *testing.T) {
	s := session.New()
	path := writeLog(t, "a.csv",
		"Iteration,Error:X",
		"0,2.0",
		"1,1.0",
	)
	if err := s.Load(path, dataset.Options{}); err != nil {
		t.Fatalf("Load: %v", err)
	}
	id := s.Dataset().ID

	if err := os.WriteFile(path, []byte("Iteration,Error:X\n0,oops\n"), 0o644); err != nil {
		t.Fatalf("rewrite: %v", err)
	}
	if err := s.Reload(dataset.Options{}); err == nil {
		t.Fatalf("expected reload failure")
	}
	if s.Dataset() == nil || s.Dataset().ID != id {
		t.Fatalf("failed load must keep the prior generation")
	}
	if !strings.Contains(s.LastError, "line 2") {
		t.Fatalf("LastError = %q, want line number", s.LastError)
	}
	if len(s.Registry().Names()) != 1 || len(s.Stats().Trend) != 2 {
		t.Fatalf("derived structures were partially overwritten")
	}
}

func TestExportDoesNotTouchCoreState(t *testing.T) {
	s := session.New()
	path := writeLog(t, "a.csv",
		"Iteration,Error:X,Value:X",
		"0,2.0,10.0",
		"1,1.0,11.0",
	)
	if err := s.Load(path, dataset.Options{}); err != nil {
		t.Fatalf("Load: %v", err)
	}
	s.Selection().SelectAllFiltered("")
	id := s.Dataset().ID

	var buf bytes.Buffer
	if err := s.ExportCSV(&buf, export.KindError); err != nil {
		t.Fatalf("ExportCSV: %v", err)
	}
	if !strings.HasPrefix(buf.String(), "Iteration,X_Error") {
		t.Fatalf("csv = %q", buf.String())
	}

	// A failing export records a message but leaves the generation alone.
	s.Selection().UnselectAll()
	err := s.ExportChart(&buf, export.KindError, export.ChartOptions{})
	if err == nil {
		t.Fatalf("expected export failure with empty selection")
	}
	if s.LastError == "" {
		t.Fatalf("export failure must surface in LastError")
	}
	if s.Dataset().ID != id || s.Registry() == nil {
		t.Fatalf("export must never mutate the core model")
	}
}

func TestReloadWithoutPathFails(t *testing.T) {
	s := session.New()
	if err := s.Reload(dataset.Options{}); err == nil {
		t.Fatalf("expected error")
	}
	if s.LastError == "" {
		t.Fatalf("LastError not set")
	}
}
