package cmd

import (
	"fmt"
	"os"

	app "github.com/cathapult/cathapult/pkg"
	"github.com/cathapult/cathapult/pkg/config"
	"github.com/spf13/cobra"
)

// funcFlag converts an explicitly set flag into a config option. It
// returns nil when the flag was not used.
type funcFlag func(cmd *cobra.Command) config.Option

func versionFlag(cmd *cobra.Command) {
	hasVersionFlag, _ := cmd.Flags().GetBool("version")
	if hasVersionFlag {
		fmt.Printf("\nversion: %s\nbuild: %s\n\n", app.Version, app.Build)
		os.Exit(0)
	}
}

// applyFlags updates the configuration with options from changed flags.
func applyFlags(cmd *cobra.Command, flags ...funcFlag) {
	var flagOpts []config.Option
	for _, f := range flags {
		if opt := f(cmd); opt != nil {
			flagOpts = append(flagOpts, opt)
		}
	}
	if cfg == nil {
		cfg = config.New()
	}
	cfg.Update(flagOpts)
	opts = append(opts, flagOpts...)
}

func jobsFlag(cmd *cobra.Command) config.Option {
	if !cmd.Flags().Changed("jobs") {
		return nil
	}
	i, _ := cmd.Flags().GetInt("jobs")
	return config.OptJobsNumber(i)
}

func delayFlag(cmd *cobra.Command) config.Option {
	if !cmd.Flags().Changed("delay") {
		return nil
	}
	i, _ := cmd.Flags().GetInt("delay")
	return config.OptFetchDelayMs(i)
}

func timeoutFlag(cmd *cobra.Command) config.Option {
	if !cmd.Flags().Changed("timeout") {
		return nil
	}
	i, _ := cmd.Flags().GetInt("timeout")
	return config.OptFetchTimeout(i)
}

func dbFlag(cmd *cobra.Command) config.Option {
	if !cmd.Flags().Changed("db") {
		return nil
	}
	s, _ := cmd.Flags().GetString("db")
	return config.OptDatabasePath(s)
}

func alphaFlag(cmd *cobra.Command) config.Option {
	if !cmd.Flags().Changed("alpha") {
		return nil
	}
	f, _ := cmd.Flags().GetFloat64("alpha")
	return config.OptEnrichmentAlpha(f)
}

func uniqueFlag(cmd *cobra.Command) config.Option {
	if !cmd.Flags().Changed("unique") {
		return nil
	}
	b, _ := cmd.Flags().GetBool("unique")
	return config.OptEnrichmentUnique(b)
}

// addRefFlags adds flags for the two CATH name tables.
func addRefFlags(cmd *cobra.Command) {
	cmd.Flags().String("names", "",
		"CATH names table (default: <reference_dir>/"+config.NamesFile+")")
	cmd.Flags().String("superfamilies", "",
		"CATH superfamily list (default: <reference_dir>/"+config.SuperfamiliesFile+")")
}

// refPaths returns the paths of the name tables and whether they are
// required. Tables given by flags are required, the ones from the
// reference directory are optional.
func refPaths(cmd *cobra.Command) (names, sf string, required bool) {
	names, _ = cmd.Flags().GetString("names")
	sf, _ = cmd.Flags().GetString("superfamilies")
	if names != "" || sf != "" {
		return names, sf, true
	}
	names, sf = cfg.ReferencePaths()
	return names, sf, false
}
