package cmd

import (
	"fmt"
	"os"

	cfgpkg "github.com/KaramelBytes/calview-cli/internal/config"
	"github.com/KaramelBytes/calview-cli/internal/dataset"
	"github.com/KaramelBytes/calview-cli/internal/session"
	"github.com/spf13/cobra"
)

var (
	// Global flags (wired to config/viper)
	cfgFile string
	debug   bool

	// Loaded configuration
	cfg *cfgpkg.Global
)

var rootCmd = &cobra.Command{
	Use:   "calview",
	Short: "CalView CLI: explore iterative calibration-run logs",
	Long:  `CalView ingests calibration-run CSV logs (one row per optimization iteration, with run-defined Error:/Value: columns), summarizes convergence, and exports selected series as CSV, XLSX, or a PNG chart.`,
}

// Execute is the entry point called by main.main()
func Execute() {
	// Initialize configuration before executing commands
	cobra.OnInitialize(loadConfig)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	// Persistent global flags available to all subcommands
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.calview/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug output")
}

func loadConfig() {
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal: allow running commands that don't need config
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to load config: %v\n", err)
		return
	}
	cfg = c
}

// newSession builds a session honoring the loaded configuration.
func newSession() *session.Session {
	s := session.New()
	if cfg != nil {
		s.Dark = cfg.DarkMode
	}
	return s
}

// loadOptions wires best-effort progress reporting to stderr when --debug is
// set. Progress never alters the produced dataset.
func loadOptions() dataset.Options {
	opts := dataset.Options{}
	if cfg != nil {
		opts.Every = cfg.ProgressEvery
	}
	if debug {
		opts.Progress = func(n int) {
			fmt.Fprintf(os.Stderr, "Loaded %d records...\n", n)
		}
	}
	return opts
}
