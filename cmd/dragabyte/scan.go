package main

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/pureportal/dragabyte/pkg/events"
	"github.com/pureportal/dragabyte/pkg/logging"
	"github.com/pureportal/dragabyte/pkg/scan"
	"github.com/pureportal/dragabyte/pkg/scan/filter"
	"github.com/pureportal/dragabyte/pkg/scan/priority"
	"github.com/pureportal/dragabyte/pkg/scan/snapshot"
)

// sessionKey identifies the CLI's single scan session.
const sessionKey = "cli"

func runScan(cmd *cobra.Command, args []string) error {
	if err := logging.Init(logging.Config{
		Level: viper.GetString("log_level"),
		Path:  viper.GetString("log_file"),
	}); err != nil {
		printError("%v", err)
		return err
	}
	defer logging.Close()

	target := "."
	switch {
	case len(args) > 0:
		target = args[0]
	default:
		if startup := ResolveStartupPath(os.Args); startup != "" {
			target = startup
		}
	}

	opts, err := buildOptions(cmd)
	if err != nil {
		printError("%v", err)
		return err
	}

	engine := scan.NewEngine()
	bus := events.NewBus()
	defer bus.Close()
	sub := bus.Subscribe(256)

	// Ctrl-C requests cooperative cancellation; the scan still publishes
	// its terminal event.
	interrupts := make(chan os.Signal, 1)
	signal.Notify(interrupts, os.Interrupt)
	defer signal.Stop(interrupts)
	go func() {
		for range interrupts {
			engine.Cancel(sessionKey)
		}
	}()

	if err := engine.Start(sessionKey, target, opts, bus); err != nil {
		printError("%v", err)
		return err
	}

	showProgress := isatty.IsTerminal(os.Stderr.Fd()) && !viper.GetBool("json")
	for event := range sub.Events {
		switch event.Name {
		case events.ScanProgress:
			if summary, ok := event.Payload.(*snapshot.Summary); ok && showProgress {
				renderProgress(os.Stderr, summary)
			}
		case events.ScanComplete:
			summary, ok := event.Payload.(*snapshot.Summary)
			if !ok {
				return fmt.Errorf("unexpected completion payload")
			}
			if showProgress {
				clearProgress(os.Stderr)
			}
			if viper.GetBool("json") {
				return writeJSON(os.Stdout, summary)
			}
			renderSummary(os.Stdout, summary, viper.GetInt("depth"))
			return nil
		case events.ScanCancelled:
			if showProgress {
				clearProgress(os.Stderr)
			}
			fmt.Fprintln(os.Stderr, "Scan cancelled")
			return nil
		case events.ScanError:
			if showProgress {
				clearProgress(os.Stderr)
			}
			return fmt.Errorf("scan failed: %v", event.Payload)
		}
	}
	return fmt.Errorf("event stream closed before a terminal event")
}

// buildOptions assembles scan options from flags, config file, and env.
func buildOptions(cmd *cobra.Command) (scan.Options, error) {
	var opts scan.Options

	mode, err := priority.ParseMode(viper.GetString("priority"))
	if err != nil {
		return opts, err
	}
	level, err := priority.ParseThrottleLevel(viper.GetString("throttle"))
	if err != nil {
		return opts, err
	}

	flags := cmd.Flags()
	spec := filter.Spec{
		IncludeExtensions: stringSlice(flags, "include-ext"),
		ExcludeExtensions: viper.GetStringSlice("exclude_ext"),
		IncludeNames:      stringSlice(flags, "include-name"),
		ExcludeNames:      stringSlice(flags, "exclude-name"),
		IncludePaths:      stringSlice(flags, "include-path"),
		ExcludePaths:      viper.GetStringSlice("exclude_path"),
		IncludeGlobs:      stringSlice(flags, "include-glob"),
		ExcludeGlobs:      stringSlice(flags, "exclude-glob"),
	}
	spec.IncludeRegex, _ = flags.GetString("include-regex")
	spec.ExcludeRegex, _ = flags.GetString("exclude-regex")

	if spec.MinSizeBytes, err = sizeFlag(flags, "min-size"); err != nil {
		return opts, err
	}
	if spec.MaxSizeBytes, err = sizeFlag(flags, "max-size"); err != nil {
		return opts, err
	}

	opts.Priority = mode
	opts.Throttle = level
	opts.Filters = spec
	return opts, nil
}

func stringSlice(flags *pflag.FlagSet, name string) []string {
	values, _ := flags.GetStringSlice(name)
	return values
}

// sizeFlag parses a human-readable size flag ("100M", "1G") into an
// optional byte bound. An unset flag means unbounded.
func sizeFlag(flags *pflag.FlagSet, name string) (*int64, error) {
	if !flags.Changed(name) {
		return nil, nil
	}
	raw, _ := flags.GetString(name)
	if raw == "" {
		return nil, nil
	}
	parsed, err := humanize.ParseBytes(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid %s %q: %w", name, raw, err)
	}
	size := int64(parsed)
	return &size, nil
}
