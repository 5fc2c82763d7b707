package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/huangsam/hammer/schema"
)

// GetStatus implements the Store interface.
func (s *SQLStore) GetStatus(ctx context.Context) (schema.StoreStatus, error) {
	status := schema.StoreStatus{
		Backend:    string(s.backend),
		Connected:  s.db != nil,
		TableSizes: make(map[string]int64),
	}
	if s.db == nil {
		return status, nil
	}

	v, dirty, err := s.version()
	if err != nil {
		return status, err
	}
	status.SchemaVersion = v
	status.Dirty = dirty
	status.Initialized = v > 0
	if !status.Initialized {
		return status, nil
	}

	for _, table := range statusTables {
		var count int64
		// Table names come from a fixed list, never from user input
		row := s.db.QueryRowContext(ctx, fmt.Sprintf("SELECT COUNT(*) FROM %s", table))
		if err := row.Scan(&count); err != nil {
			return status, fmt.Errorf("failed to count rows of %s: %w", table, err)
		}
		status.TableSizes[table] = count
	}
	status.Projects = int(status.TableSizes["hammer_projects"])

	var latest sql.NullInt64
	if err := s.db.QueryRowContext(ctx, `SELECT MAX(commit_time) FROM hammer_commits`).Scan(&latest); err != nil {
		return status, fmt.Errorf("failed to get latest commit time: %w", err)
	}
	if latest.Valid {
		t := time.Unix(latest.Int64, 0).UTC()
		status.LatestCommit = &t
	}
	return status, nil
}
