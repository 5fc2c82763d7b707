package store

import (
	"fmt"
	"strings"

	"github.com/huangsam/hammer/schema"
)

// Idempotent inserts, written in the portable form "INSERT INTO t (cols) VALUES (...)".
const (
	projectInsert           = `INSERT INTO hammer_projects (name) VALUES (?)`
	projectRepositoryInsert = `INSERT INTO hammer_project_repositories (project_name, repository_id) VALUES (?, ?)`
)

// insertIgnoreQuery rewrites an insert so that duplicate keys are skipped.
func insertIgnoreQuery(backend schema.DatabaseBackend, insert string) string {
	switch backend {
	case schema.MySQLBackend:
		return strings.Replace(insert, "INSERT INTO", "INSERT IGNORE INTO", 1)
	case schema.PostgreSQLBackend:
		return insert + ` ON CONFLICT DO NOTHING`
	default: // SQLite
		return strings.Replace(insert, "INSERT INTO", "INSERT OR IGNORE INTO", 1)
	}
}

// upsertQuery returns an insert that updates the given columns when the key already exists.
func upsertQuery(backend schema.DatabaseBackend, table string, key []string, columns []string) string {
	all := append(append([]string{}, key...), columns...)
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(all)), ", ")
	insert := fmt.Sprintf(`INSERT INTO %s (%s) VALUES (%s)`, table, strings.Join(all, ", "), placeholders)

	updates := make([]string, 0, len(columns))
	switch backend {
	case schema.MySQLBackend:
		for _, c := range columns {
			updates = append(updates, fmt.Sprintf("%s = new.%s", c, c))
		}
		return insert + ` AS new ON DUPLICATE KEY UPDATE ` + strings.Join(updates, ", ")
	default: // SQLite and PostgreSQL
		for _, c := range columns {
			updates = append(updates, fmt.Sprintf("%s = excluded.%s", c, c))
		}
		return insert + fmt.Sprintf(` ON CONFLICT (%s) DO UPDATE SET `, strings.Join(key, ", ")) + strings.Join(updates, ", ")
	}
}

var (
	authorUpsertColumns = []string{"aliases"}
	commitUpsertColumns = []string{
		"author_name", "added_lines", "deleted_lines", "commit_time",
		"commit_time_utc_offset", "parent_ids", "repository_id",
	}
)

// statusTables lists the tables whose row counts are reported by GetStatus.
var statusTables = []string{
	"hammer_projects",
	"hammer_repositories",
	"hammer_project_repositories",
	"hammer_authors",
	"hammer_commits",
	"hammer_author_commits",
}
