package cmd

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/huangsam/hammer/core"
	"github.com/spf13/cobra"
)

// initProjectCmd creates a project from its first repository.
var initProjectCmd = &cobra.Command{
	Use:   "init-project <project> <repo-path>",
	Short: "Create a project and process its first repository.",
	Long: `Create a new project in the database and process every commit of its first repository.

The database schema is created on first use. The repository is classified with
the git-hammer-config.json file at its root unless --repo-config is given.

Examples:
  # Track a repository under the project "backend"
  hammer init-project backend ~/src/api

  # Ignore history older than two years
  hammer init-project backend ~/src/api --earliest-commit-date "2 years ago"`,
	Args:    cobra.ExactArgs(2),
	PreRunE: setupArgs(0, 1),
	RunE: func(_ *cobra.Command, _ []string) error {
		return withSession(func(h *core.Hammer) error {
			if h.Exists() {
				return fmt.Errorf("project %s already exists, use add-repository instead", h.ProjectName())
			}
			return addRepository(h)
		})
	},
}

// addRepositoryCmd adds a repository to an existing project.
var addRepositoryCmd = &cobra.Command{
	Use:   "add-repository <project> <repo-path>",
	Short: "Add a repository to a project and process its commits.",
	Long: `Add another repository to a project. Its commits are processed immediately and
its line counts are combined with the other repositories of the project.

Adding a repository that is already part of the project does nothing.

Examples:
  hammer add-repository backend ~/src/worker
  hammer add-repository backend ~/src/worker --repo-config ~/hammer/worker.json`,
	Args:    cobra.ExactArgs(2),
	PreRunE: setupArgs(0, 1),
	RunE: func(_ *cobra.Command, _ []string) error {
		return withSession(addRepository)
	},
}

func addRepository(h *core.Hammer) error {
	start := time.Now()
	if err := h.AddRepository(rootCtx, cfg.RepoPath, cfg.ConfigPath, cfg.EarliestCommitDate); err != nil {
		return err
	}
	slog.Info("repository processed", "project", h.ProjectName(), "repository", cfg.RepoPath, "duration", time.Since(start).Round(time.Millisecond))
	return nil
}

// updateProjectCmd processes the commits added since the last run.
var updateProjectCmd = &cobra.Command{
	Use:   "update-project <project>",
	Short: "Process new commits of every repository in a project.",
	Long: `Walk the history of every repository in a project and process commits that have
not been seen before. Running it twice in a row does nothing the second time.

Examples:
  hammer update-project backend
  hammer update-project backend --flush-interval 30s --log-level debug`,
	Args:    cobra.ExactArgs(1),
	PreRunE: setupArgs(0, -1),
	RunE: func(_ *cobra.Command, _ []string) error {
		return withSession(func(h *core.Hammer) error {
			start := time.Now()
			if err := h.UpdateData(rootCtx); err != nil {
				return err
			}
			slog.Info("project updated", "project", h.ProjectName(), "duration", time.Since(start).Round(time.Millisecond))
			return nil
		})
	},
}

// listProjectsCmd lists the projects of the database.
var listProjectsCmd = &cobra.Command{
	Use:     "list-projects",
	Short:   "List the projects stored in the database.",
	Args:    cobra.NoArgs,
	PreRunE: setupArgs(-1, -1),
	RunE: func(_ *cobra.Command, _ []string) error {
		st, err := openStore()
		if err != nil {
			return err
		}
		defer func() { _ = st.Close() }()

		initialized, err := st.Initialized(rootCtx)
		if err != nil {
			return err
		}
		var projects []string
		if initialized {
			if err := st.CheckSchema(rootCtx); err != nil {
				return err
			}
			if projects, err = st.ListProjects(rootCtx); err != nil {
				return err
			}
		}
		return writer.WriteProjects(projects, cfg)
	},
}
