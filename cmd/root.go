/*
Copyright © 2025 The Cathapult Authors

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/cathapult/cathapult/internal/iofs"
	"github.com/cathapult/cathapult/internal/iologger"
	app "github.com/cathapult/cathapult/pkg"
	"github.com/cathapult/cathapult/pkg/config"
	"github.com/gnames/gn"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	homeDir string
	opts    []config.Option
	cfg     *config.Config
)

// getRootCmd returns the root command with all subcommands attached.
// Extracted as a function to facilitate testing.
func getRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Version: fmt.Sprintf("version: %s\nbuild:   %s", app.Version, app.Build),
		Use:     "cathapult",
		Short:   "Cathapult compares CATH domain composition of protein groups",
		Long: `Cathapult fetches TED structural-domain summaries for UniProt
accessions, filters bulk TED summaries, counts CATH domains and compares
two protein groups by odds ratios of their CATH features.

Commands:
  fetch      download domain summaries from the TED API
  createdb   load a bulk TED summary into a local SQLite database
  filter     select proteins from the local database
  analyze    count and annotate domains of one summary
  oddsratio  compare two groups, write a table and a forest plot

Configuration precedence (highest to lowest):
  1. command line flags
  2. environment variables (CATHAPULT_*), also read from ./.env
  3. config file (~/.config/cathapult/config.yaml)
  4. built-in defaults

Environment variables:
  CATHAPULT_DATABASE_PATH      SQLite file with a bulk summary
  CATHAPULT_FETCH_DELAY_MS     pause between TED requests
  CATHAPULT_JOBS_NUMBER        concurrent TED requests
  CATHAPULT_REFERENCE_DIR      directory with CATH name tables
  CATHAPULT_LOG_LEVEL          debug, info, warn or error`,
		PersistentPreRunE: bootstrap,
		RunE:              runRoot,
		SilenceErrors:     true,
		SilenceUsage:      true,
	}

	// Remove the automatic "cathapult version" prefix
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	// Override version flag to use -V (consistent with other gn projects)
	rootCmd.Flags().BoolP("version", "V", false, "version for cathapult")

	rootCmd.AddCommand(
		getFetchCmd(),
		getCreateDBCmd(),
		getFilterCmd(),
		getAnalyzeCmd(),
		getOddsRatioCmd(),
	)
	return rootCmd
}

func bootstrap(cmd *cobra.Command, args []string) error {
	var err error
	homeDir, err = os.UserHomeDir()
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureDirs(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	// Initialize logging with hardcoded defaults
	// Will be reconfigured later with user's config settings
	defaultLog := config.LogConfig{
		Format:      "json",
		Level:       "info",
		Destination: "file",
	}
	if _, err = iologger.Init(config.LogDir(homeDir), defaultLog); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureConfigFile(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	loadDotEnv()

	var cfgViper *config.Config
	if cfgViper, err = initConfig(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	cfg = config.New()
	opts = cfgViper.ToOptions()
	cfg.Update(opts)

	// Set HomeDir after config is loaded
	cfg.Update([]config.Option{config.OptHomeDir(homeDir)})

	// Reconfigure logging with user's settings
	if _, err = iologger.Init(config.LogDir(cfg.HomeDir), cfg.Log); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	slog.Info("Configuration loaded",
		"config_file", config.ConfigFilePath(homeDir),
		"command", cmd.Name(),
	)
	return nil
}

// loadDotEnv reads ./.env into the process environment, so its values
// reach viper the same way real environment variables do.
func loadDotEnv() {
	const envFile = ".env"
	if _, err := os.Stat(envFile); err != nil {
		return
	}
	if err := godotenv.Load(envFile); err != nil {
		gn.Warn("Cannot read <em>%s</em>: %s", envFile, err.Error())
		slog.Warn("Cannot read .env file", "error", err)
	}
}

func runRoot(cmd *cobra.Command, args []string) error {
	versionFlag(cmd)
	gn.Info(
		"Configuration files are available at <em>%s</em>",
		config.ConfigDir(homeDir),
	)
	return cmd.Help()
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	err := getRootCmd().Execute()
	if err != nil {
		os.Exit(1)
	}
}

func initConfig(home string) (*config.Config, error) {
	var err error
	cfgPath := config.ConfigFilePath(home)
	v := viper.New()
	v.SetConfigFile(cfgPath)

	initEnvVars(v)

	if err = v.ReadInConfig(); err != nil {
		return nil, iofs.ReadFileError(cfgPath, err)
	}

	var res config.Config
	if err = v.Unmarshal(&res); err != nil {
		return nil, iofs.ReadFileError(cfgPath, err)
	}

	return &res, nil
}

func initEnvVars(v *viper.Viper) {
	// Environment variables are bound one by one, so it is clear which of
	// them are allowed. They match the fields of config.ToOptions().
	v.SetEnvPrefix("CATHAPULT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Fetch configuration
	_ = v.BindEnv("fetch.base_url", "CATHAPULT_FETCH_BASE_URL")
	_ = v.BindEnv("fetch.timeout", "CATHAPULT_FETCH_TIMEOUT")
	_ = v.BindEnv("fetch.delay_ms", "CATHAPULT_FETCH_DELAY_MS")
	_ = v.BindEnv("fetch.max_retries", "CATHAPULT_FETCH_MAX_RETRIES")
	_ = v.BindEnv("fetch.page_limit", "CATHAPULT_FETCH_PAGE_LIMIT")

	// Database configuration
	_ = v.BindEnv("database.path", "CATHAPULT_DATABASE_PATH")
	_ = v.BindEnv("database.batch_size", "CATHAPULT_DATABASE_BATCH_SIZE")

	// Enrichment configuration
	_ = v.BindEnv("enrichment.alpha", "CATHAPULT_ENRICHMENT_ALPHA")

	// Log configuration
	_ = v.BindEnv("log.level", "CATHAPULT_LOG_LEVEL")
	_ = v.BindEnv("log.format", "CATHAPULT_LOG_FORMAT")
	_ = v.BindEnv("log.destination", "CATHAPULT_LOG_DESTINATION")

	// General configuration
	_ = v.BindEnv("jobs_number", "CATHAPULT_JOBS_NUMBER")
	_ = v.BindEnv("reference_dir", "CATHAPULT_REFERENCE_DIR")

	v.AutomaticEnv()
}
