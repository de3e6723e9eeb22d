package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Global configuration structure.
type Global struct {
	DarkMode      bool   `mapstructure:"dark_mode" yaml:"dark_mode"`
	ChartWidth    int    `mapstructure:"chart_width" yaml:"chart_width"`
	ChartHeight   int    `mapstructure:"chart_height" yaml:"chart_height"`
	ProgressEvery int    `mapstructure:"progress_every" yaml:"progress_every"`
	ExportDir     string `mapstructure:"export_dir" yaml:"export_dir"`
}

// Save writes the given configuration to the cfgFile path. If cfgFile is
// empty, it writes to ~/.calview/config.yaml, creating the directory if
// necessary.
func Save(c *Global, cfgFile string) error {
	var path string
	if cfgFile != "" {
		path = cfgFile
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("resolve home dir: %w", err)
		}
		dir := filepath.Join(home, ".calview")
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: flags (cfgFile) > env > config file > defaults.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix("CALVIEW")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("dark_mode", false)
	v.SetDefault("chart_width", 1280)
	v.SetDefault("chart_height", 640)
	v.SetDefault("progress_every", 100)
	v.SetDefault("export_dir", "")

	// Config file
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home dir: %w", err)
		}
		dir := filepath.Join(home, ".calview")
		_ = os.MkdirAll(dir, 0o755)
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	// optional read
	_ = v.ReadInConfig()

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &c, nil
}
