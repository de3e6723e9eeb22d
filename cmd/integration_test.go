package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// runCmd is a helper to execute the root command with args.
func runCmd(t *testing.T, args ...string) {
	t.Helper()
	resetFlags()
	rootCmd.SetArgs(args)
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("command %v failed: %v", args, err)
	}
}

// resetFlags clears sticky flag state that persists across invocations.
func resetFlags() {
	for _, name := range []string{"kind", "vars", "format", "output", "x-min", "x-max", "y-min", "y-max"} {
		if fl := exportCmd.Flags().Lookup(name); fl != nil {
			_ = fl.Value.Set(fl.DefValue)
			fl.Changed = false
		}
	}
	if fl := variablesCmd.Flags().Lookup("filter"); fl != nil {
		_ = fl.Value.Set("")
		fl.Changed = false
	}
	expKind, expVars, expFormat, expOutput = "", "", "csv", ""
	varsFilter = ""
}

func writeFixture(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "run.csv")
	rows := []string{
		"Iteration,Error:X,Value:X,Error:Y",
		"0,2.0,10.0,-1.0",
		"1,1.0,11.0,-0.5",
	}
	if err := os.WriteFile(path, []byte(strings.Join(rows, "\n")+"\n"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func TestCLI_SummaryAndVariables(t *testing.T) {
	home := t.TempDir()
	oldHome := os.Getenv("HOME")
	defer os.Setenv("HOME", oldHome)
	os.Setenv("HOME", home)

	path := writeFixture(t, home)
	runCmd(t, "summary", path)
	runCmd(t, "variables", path, "--filter", "x,y")
}

func TestCLI_ExportCSV(t *testing.T) {
	home := t.TempDir()
	oldHome := os.Getenv("HOME")
	defer os.Setenv("HOME", oldHome)
	os.Setenv("HOME", home)

	path := writeFixture(t, home)
	out := filepath.Join(home, "series.csv")
	runCmd(t, "export", path, "--kind", "error", "-o", out)

	b, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	got := string(b)
	if !strings.HasPrefix(got, "Iteration,X_Error,Y_Error") {
		t.Fatalf("unexpected header: %q", got)
	}
	if !strings.Contains(got, "1,1,-0.5") {
		t.Fatalf("missing data row: %q", got)
	}
}

func TestCLI_ExportPNGWithVarsFilter(t *testing.T) {
	home := t.TempDir()
	oldHome := os.Getenv("HOME")
	defer os.Setenv("HOME", oldHome)
	os.Setenv("HOME", home)

	path := writeFixture(t, home)
	out := filepath.Join(home, "chart.png")
	runCmd(t, "export", path, "--kind", "value", "--vars", "x", "--format", "png", "-o", out)

	b, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	if len(b) < 8 || string(b[1:4]) != "PNG" {
		t.Fatalf("output is not a PNG (%d bytes)", len(b))
	}
}

func TestCLI_ExportRejectsPartialBounds(t *testing.T) {
	home := t.TempDir()
	oldHome := os.Getenv("HOME")
	defer os.Setenv("HOME", oldHome)
	os.Setenv("HOME", home)

	path := writeFixture(t, home)
	resetFlags()
	rootCmd.SetArgs([]string{"export", path, "--kind", "error", "--format", "png", "--x-min", "0"})
	if err := rootCmd.Execute(); err == nil {
		t.Fatalf("expected error for partial bounds")
	}
}
