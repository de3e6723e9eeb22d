package cmd

import (
	"fmt"
	"strconv"

	cfgpkg "github.com/KaramelBytes/calview-cli/internal/config"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set CalView configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg == nil {
			fmt.Println("No config loaded")
			return nil
		}
		fmt.Printf("dark_mode: %v\n", cfg.DarkMode)
		fmt.Printf("chart_width: %d\n", cfg.ChartWidth)
		fmt.Printf("chart_height: %d\n", cfg.ChartHeight)
		fmt.Printf("progress_every: %d\n", cfg.ProgressEvery)
		if cfg.ExportDir != "" {
			fmt.Printf("export_dir: %s\n", cfg.ExportDir)
		}
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, val := args[0], args[1]
		if cfg == nil {
			c, err := cfgpkg.Load(cfgFile)
			if err != nil {
				return err
			}
			cfg = c
		}
		switch key {
		case "dark_mode":
			b, err := strconv.ParseBool(val)
			if err != nil {
				return fmt.Errorf("invalid bool for dark_mode: %v", val)
			}
			cfg.DarkMode = b
		case "chart_width":
			i, err := strconv.Atoi(val)
			if err != nil || i <= 0 {
				return fmt.Errorf("invalid int for chart_width: %v", val)
			}
			cfg.ChartWidth = i
		case "chart_height":
			i, err := strconv.Atoi(val)
			if err != nil || i <= 0 {
				return fmt.Errorf("invalid int for chart_height: %v", val)
			}
			cfg.ChartHeight = i
		case "progress_every":
			i, err := strconv.Atoi(val)
			if err != nil || i <= 0 {
				return fmt.Errorf("invalid int for progress_every: %v", val)
			}
			cfg.ProgressEvery = i
		case "export_dir":
			cfg.ExportDir = val
		default:
			return fmt.Errorf("unknown key: %s", key)
		}
		if err := cfgpkg.Save(cfg, cfgFile); err != nil {
			return err
		}
		fmt.Println("Saved config")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}
