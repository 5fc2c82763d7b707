package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/huangsam/hammer/core"
	"github.com/huangsam/hammer/internal/contract"
	"github.com/huangsam/hammer/internal/outwriter"
	"github.com/huangsam/hammer/internal/store"
	"github.com/huangsam/hammer/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// All linker flags will be set by goreleaser infra at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// rootCtx is the root context for all operations.
var rootCtx = context.Background()

// cfg will hold the validated, final configuration.
var cfg = &contract.Config{}

// input holds the raw, unvalidated configuration from all sources (file, env, flags).
// Viper will unmarshal into this struct.
var input = &contract.ConfigRawInput{}

// writer renders every command result.
var writer = outwriter.NewOutWriter()

// errRegression makes check-regression exit non-zero after printing its report.
var errRegression = errors.New("regression check found mismatches")

// rootCmd is the command-line entrypoint for all other commands.
var rootCmd = &cobra.Command{
	Use:   "hammer",
	Short: "Track per-author line and test counts across git repositories.",
	Long: `Hammer walks the history of one or more git repositories and records, for every
commit, how many source lines and test lines each author owns.

Statistics are stored in a database (SQLite by default) and updated incrementally:
only new commits are processed on each run.`,
	Version:            version,
	SilenceErrors:      true,
	SilenceUsage:       true,
	DisableSuggestions: true,
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	// Check if a specific config file is provided
	if configFile := viper.GetString("config"); configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.SetConfigName(".hammer") // Name of config file (without extension)
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME")
	}

	// Set environment variable prefix
	viper.SetEnvPrefix("HAMMER")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
	if err := viper.BindEnv("db-connect", "HAMMER_DB_CONNECT", "DATABASE_URL"); err != nil {
		contract.LogFatal("Error binding database environment", err)
	}

	// Set defaults in Viper
	viper.SetDefault("output", schema.TextOut)
	viper.SetDefault("db-backend", schema.SQLiteBackend)
	viper.SetDefault("db-connect", "")
	viper.SetDefault("color", "yes")
	viper.SetDefault("log-level", "info")
	viper.SetDefault("flush-interval", "5 minutes")
	viper.SetDefault("frequency", string(contract.DefaultFrequency))
}

// sharedSetup unmarshals config and runs validation.
func sharedSetup(project, repo string) error {
	// 1. Read config file. This merges defaults, file, env, and flags.
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	// 2. Unmarshal all resolved values from Viper into our raw input struct.
	if err := viper.Unmarshal(input); err != nil {
		return fmt.Errorf("unable to unmarshal config: %w", err)
	}

	// 3. Handle positional arguments (which Viper doesn't do).
	input.ProjectStr = project
	input.RepoPathStr = repo

	// 4. Run all validation and complex parsing.
	if err := contract.ProcessAndValidate(cfg, input, time.Now()); err != nil {
		return err
	}
	contract.ConfigureLogging(cfg.LogLevel)
	color.NoColor = !cfg.UseColors
	return nil
}

// setupArgs returns a PreRunE that takes the project and repository from
// the positional arguments at the given indices. A negative index skips it.
func setupArgs(projectIdx, repoIdx int) func(*cobra.Command, []string) error {
	return func(_ *cobra.Command, args []string) error {
		return sharedSetup(argAt(args, projectIdx), argAt(args, repoIdx))
	}
}

func argAt(args []string, i int) string {
	if i < 0 || i >= len(args) {
		return ""
	}
	return args[i]
}

// openStore connects to the configured database.
func openStore() (*store.SQLStore, error) {
	return store.Open(rootCtx, cfg.DatabaseBackend, cfg.DatabaseConnect)
}

// openSession opens a session over project with the configured ingestion options.
func openSession(st contract.Store, project string) (*core.Hammer, error) {
	return core.New(rootCtx, project, st, contract.NewLocalGitClient(),
		core.WithFlushInterval(cfg.FlushInterval),
		core.WithFullRecompute(cfg.FullRecompute),
	)
}

// withSession runs fn over a session of cfg.Project and closes the store afterwards.
func withSession(fn func(h *core.Hammer) error) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	h, err := openSession(st, cfg.Project)
	if err != nil {
		return err
	}
	return fn(h)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
