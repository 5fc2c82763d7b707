package cmd

import (
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// dbCmd groups the database maintenance commands.
var dbCmd = &cobra.Command{
	Use:   "db",
	Short: "Manage the hammer database.",
	Long:  `Inspect and migrate the database that holds the project statistics.`,
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

// dbMigrateCmd moves the schema to a given version.
var dbMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Migrate the database schema.",
	Long: `Apply or roll back schema migrations.

By default the schema is moved to the latest version. Use --target 0 to remove
every table, which deletes all projects.

Examples:
  hammer db migrate
  hammer db migrate --db-backend postgresql --db-connect postgres://localhost/hammer
  hammer db migrate --target 0`,
	Args:    cobra.NoArgs,
	PreRunE: setupArgs(-1, -1),
	RunE: func(cmd *cobra.Command, _ []string) error {
		st, err := openStore()
		if err != nil {
			return err
		}
		defer func() { _ = st.Close() }()

		from, to, err := st.Migrate(rootCtx, viper.GetInt("target"))
		if err != nil {
			return err
		}
		if from == to {
			cmd.Printf("Schema already at version %d\n", to)
			return nil
		}
		slog.Info("schema migrated", "backend", st.Backend(), "from", from, "to", to)
		cmd.Printf("Migrated schema from version %d to %d\n", from, to)
		return nil
	},
}

// dbStatusCmd reports the state of the database.
var dbStatusCmd = &cobra.Command{
	Use:     "status",
	Short:   "Show the database status.",
	Long:    `Show the backend, schema version, number of projects and row counts of the database.`,
	Args:    cobra.NoArgs,
	PreRunE: setupArgs(-1, -1),
	RunE: func(_ *cobra.Command, _ []string) error {
		st, err := openStore()
		if err != nil {
			return err
		}
		defer func() { _ = st.Close() }()

		status, err := st.GetStatus(rootCtx)
		if err != nil {
			return err
		}
		return writer.WriteStatus(status, cfg)
	},
}
