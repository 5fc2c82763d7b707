package cmd

import (
	"github.com/huangsam/hammer/core"
	"github.com/huangsam/hammer/internal/contract"
	"github.com/spf13/cobra"
)

// listSourcesCmd shows how a repository would be classified.
var listSourcesCmd = &cobra.Command{
	Use:   "list-sources <repo-path>",
	Short: "List the source and test files of a repository at HEAD.",
	Long: `List the files of a repository that hammer counts, as classified by its
configuration file. Test files are followed by the lines that count as tests.

Nothing is written to the database, so this is the way to check a
git-hammer-config.json before adding the repository to a project.

Examples:
  hammer list-sources ~/src/api
  hammer list-sources ~/src/api --repo-config draft.json --output json`,
	Args:    cobra.ExactArgs(1),
	PreRunE: setupArgs(-1, 0),
	RunE: func(_ *cobra.Command, _ []string) error {
		files, err := core.ListSources(rootCtx, contract.NewLocalGitClient(), cfg.RepoPath, cfg.ConfigPath)
		if err != nil {
			return err
		}
		return writer.WriteSources(files, cfg)
	},
}
