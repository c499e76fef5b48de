package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	rootCmd = &cobra.Command{
		Use:   "dragabyte [path]",
		Short: "Analyze disk usage under a directory",
		Long: heredoc.Doc(`
			Dragabyte scans a directory tree and reports where the bytes went:
			per-directory totals, the largest files, and a size-sorted tree.

			Scans run concurrently and can be tuned with a priority mode
			(performance, balanced, low) and a throttle level (off, low,
			medium, high). Filters restrict which files are counted.
		`),
		Example: heredoc.Doc(`
			dragabyte ~/Downloads                 # scan a directory
			dragabyte --exclude-ext log,tmp .     # ignore logs and temp files
			dragabyte --min-size 100M /data       # only count files >= 100 MiB
			dragabyte --priority low --throttle high /   # background-friendly
			dragabyte --json . > usage.json       # machine-readable summary
		`),
		Args: cobra.MaximumNArgs(1),
		RunE: runScan,
	}
)

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ~/.config/dragabyte/config.yaml)")
	rootCmd.PersistentFlags().StringP("priority", "p", "balanced", "priority mode (performance, balanced, low)")
	rootCmd.PersistentFlags().StringP("throttle", "t", "off", "throttle level (off, low, medium, high)")
	rootCmd.PersistentFlags().String("min-size", "", "minimum file size to count (e.g. 100M, 1G)")
	rootCmd.PersistentFlags().String("max-size", "", "maximum file size to count")
	rootCmd.PersistentFlags().StringSlice("include-ext", nil, "file extensions to include")
	rootCmd.PersistentFlags().StringSlice("exclude-ext", nil, "file extensions to exclude")
	rootCmd.PersistentFlags().StringSlice("include-name", nil, "name substrings to include")
	rootCmd.PersistentFlags().StringSlice("exclude-name", nil, "name substrings to exclude")
	rootCmd.PersistentFlags().StringSlice("include-path", nil, "path substrings to include")
	rootCmd.PersistentFlags().StringSlice("exclude-path", nil, "path substrings to exclude")
	rootCmd.PersistentFlags().String("include-regex", "", "regex a file path must match")
	rootCmd.PersistentFlags().String("exclude-regex", "", "regex that excludes matching paths")
	rootCmd.PersistentFlags().StringSlice("include-glob", nil, "glob patterns to include")
	rootCmd.PersistentFlags().StringSlice("exclude-glob", nil, "glob patterns to exclude")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "output the final summary as JSON")
	rootCmd.PersistentFlags().IntP("depth", "d", 2, "tree depth to display (0 = root only)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-file", "", "log file path (default: stderr)")

	_ = viper.BindPFlag("priority", rootCmd.PersistentFlags().Lookup("priority"))
	_ = viper.BindPFlag("throttle", rootCmd.PersistentFlags().Lookup("throttle"))
	_ = viper.BindPFlag("exclude_path", rootCmd.PersistentFlags().Lookup("exclude-path"))
	_ = viper.BindPFlag("exclude_ext", rootCmd.PersistentFlags().Lookup("exclude-ext"))
	_ = viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
	_ = viper.BindPFlag("depth", rootCmd.PersistentFlags().Lookup("depth"))
	_ = viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("log_file", rootCmd.PersistentFlags().Lookup("log-file"))
}

// initConfig reads in the config file and environment variables.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")

		if xdgConfigHome := os.Getenv("XDG_CONFIG_HOME"); xdgConfigHome != "" {
			viper.AddConfigPath(filepath.Join(xdgConfigHome, "dragabyte"))
		}
		if homeDir, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(filepath.Join(homeDir, ".config", "dragabyte"))
		}
	}

	viper.SetEnvPrefix("DRAGABYTE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("priority", "balanced")
	viper.SetDefault("throttle", "off")
	viper.SetDefault("depth", 2)
	viper.SetDefault("log_level", "info")

	// Missing config file is fine, defaults apply.
	_ = viper.ReadInConfig()
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// printError prints an error message to stderr.
func printError(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
}
