package cmd

import (
	"github.com/huangsam/hammer/core"
	"github.com/huangsam/hammer/internal/store"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// checkRegressionCmd compares two projects built from the same repositories.
var checkRegressionCmd = &cobra.Command{
	Use:   "check-regression <baseline> <candidate>",
	Short: "Compare the per-commit counts of two projects.",
	Long: `Compare two projects commit by commit on author, line changes, time and the
per-author line and test counts. The command exits non-zero when any commit differs.

Commits are stored once per database, so the candidate is usually kept in a
second database given with --candidate-db-connect (same backend). Without it
both projects are read from --db-connect.

Examples:
  hammer init-project api ~/src/api --full-recompute --db-connect blamed.db
  hammer init-project api ~/src/api --db-connect diffed.db
  hammer check-regression api api --db-connect blamed.db --candidate-db-connect diffed.db`,
	Args:    cobra.ExactArgs(2),
	PreRunE: setupArgs(0, -1),
	RunE: func(_ *cobra.Command, args []string) error {
		baseStore, err := openStore()
		if err != nil {
			return err
		}
		defer func() { _ = baseStore.Close() }()

		candidateStore := baseStore
		if connect := viper.GetString("candidate-db-connect"); connect != "" {
			if candidateStore, err = store.Open(rootCtx, cfg.DatabaseBackend, connect); err != nil {
				return err
			}
			defer func() { _ = candidateStore.Close() }()
		}

		baseline, err := openSession(baseStore, args[0])
		if err != nil {
			return err
		}
		candidate, err := openSession(candidateStore, args[1])
		if err != nil {
			return err
		}
		result, err := core.CompareProjects(baseline, candidate)
		if err != nil {
			return err
		}
		if err := writer.WriteRegression(result, cfg); err != nil {
			return err
		}
		if !result.OK() {
			return errRegression
		}
		return nil
	},
}
