// Package cmd defines the command-line interface for hammer.
package cmd

import (
	"github.com/huangsam/hammer/internal/contract"
	"github.com/huangsam/hammer/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(initProjectCmd)
	rootCmd.AddCommand(addRepositoryCmd)
	rootCmd.AddCommand(updateProjectCmd)
	rootCmd.AddCommand(listProjectsCmd)
	rootCmd.AddCommand(listSourcesCmd)
	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(graphCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(checkRegressionCmd)
	rootCmd.AddCommand(dbCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(versionCmd)

	// Add the db subcommands to the parent db command
	dbCmd.AddCommand(dbMigrateCmd)
	dbCmd.AddCommand(dbStatusCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json or parquet")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal or chart width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("db-backend", string(schema.SQLiteBackend), "Database backend: sqlite or mysql or postgresql")
	rootCmd.PersistentFlags().String("db-connect", "", "Database connection string (SQLite file path, user:pass@tcp(host:port)/dbname or postgres:// URL)")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level: debug or info or warn or error")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Ingestion flags are shared by every command that processes commits
	ingestion := pflag.NewFlagSet("ingestion", pflag.ExitOnError)
	ingestion.String("flush-interval", "5 minutes", "How often pending results are committed to the database")
	ingestion.Bool("full-recompute", false, "Blame every file of every commit instead of diffing against the parent")
	for _, c := range []*cobra.Command{initProjectCmd, addRepositoryCmd, updateProjectCmd} {
		c.Flags().AddFlagSet(ingestion)
	}
	if err := viper.BindPFlags(ingestion); err != nil {
		contract.LogFatal("Error binding ingestion flags", err)
	}

	// Repository flags are shared by the commands that add a repository
	repository := pflag.NewFlagSet("repository", pflag.ExitOnError)
	repository.String("repo-config", "", "Path to the classification file (default: <repo>/"+schema.DefaultConfigFileName+")")
	repository.String("earliest-commit-date", "", "Skip commits authored before this date (ISO8601 or time ago)")
	for _, c := range []*cobra.Command{initProjectCmd, addRepositoryCmd} {
		c.Flags().AddFlagSet(repository)
	}
	listSourcesCmd.Flags().AddFlag(repository.Lookup("repo-config"))
	if err := viper.BindPFlags(repository); err != nil {
		contract.LogFatal("Error binding repository flags", err)
	}

	// Series flags are shared by graph and export
	series := pflag.NewFlagSet("series", pflag.ExitOnError)
	series.String("frequency", string(contract.DefaultFrequency), "Resampling frequency: daily or weekly or monthly or yearly")
	for _, c := range []*cobra.Command{graphCmd, exportCmd} {
		c.Flags().AddFlagSet(series)
	}
	if err := viper.BindPFlags(series); err != nil {
		contract.LogFatal("Error binding series flags", err)
	}

	// Bind all flags of checkRegressionCmd to Viper
	checkRegressionCmd.Flags().String("candidate-db-connect", "", "Connection string of the candidate database (default: --db-connect)")
	if err := viper.BindPFlag("candidate-db-connect", checkRegressionCmd.Flags().Lookup("candidate-db-connect")); err != nil {
		contract.LogFatal("Error binding check-regression flags", err)
	}

	// Bind all flags of dbMigrateCmd to Viper
	dbMigrateCmd.Flags().Int("target", -1, "Schema version to migrate to (-1 = latest, 0 = remove all tables)")
	if err := viper.BindPFlag("target", dbMigrateCmd.Flags().Lookup("target")); err != nil {
		contract.LogFatal("Error binding db migrate flags", err)
	}
}
