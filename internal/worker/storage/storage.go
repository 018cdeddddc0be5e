package storage

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cuongbtq/job-search-be/internal/worker/domain"
	"github.com/jmoiron/sqlx"
)

// Storage persists search history
type Storage struct {
	db     *sqlx.DB
	logger *slog.Logger
}

// NewStorage creates a new Storage instance
func NewStorage(db *sqlx.DB, logger *slog.Logger) *Storage {
	return &Storage{
		db:     db,
		logger: logger,
	}
}

// SaveSearch inserts a search record. Redelivered events with an already
// stored search_id are ignored.
func (s *Storage) SaveSearch(ctx context.Context, record *domain.SearchRecord) error {
	query := `
		INSERT INTO search_history (
			search_id, job_title, location, min_salary, job_type,
			result_count, outcome, upstream_status, error,
			duration_ms, occurred_at
		) VALUES (
			:search_id, :job_title, :location, :min_salary, :job_type,
			:result_count, :outcome, :upstream_status, :error,
			:duration_ms, :occurred_at
		)
		ON CONFLICT (search_id) DO NOTHING
	`

	res, err := s.db.NamedExecContext(ctx, query, record)
	if err != nil {
		return fmt.Errorf("failed to save search: %w", err)
	}

	if rows, err := res.RowsAffected(); err == nil && rows == 0 {
		s.logger.Debug("Search already recorded",
			slog.String("search_id", record.SearchID),
		)
	}

	return nil
}

