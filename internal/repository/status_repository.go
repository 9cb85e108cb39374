package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/siports/event-service/internal/domain"
)

// StatusRepository encapsulates status-check persistence. Records are
// append-only.
type StatusRepository interface {
	Create(ctx context.Context, check *domain.StatusCheck) error
	List(ctx context.Context) ([]domain.StatusCheck, error)
}

type statusRepository struct {
	pool *pgxpool.Pool
}

// NewStatusRepository returns a Postgres-backed implementation.
func NewStatusRepository(pool *pgxpool.Pool) StatusRepository {
	return &statusRepository{pool: pool}
}

func (r *statusRepository) Create(ctx context.Context, check *domain.StatusCheck) error {
	const query = `
        INSERT INTO status_checks (id, client_name, created_at)
        VALUES ($1, $2, $3)`
	_, err := r.pool.Exec(ctx, query, check.ID, check.ClientName, check.Timestamp)
	return err
}

func (r *statusRepository) List(ctx context.Context) ([]domain.StatusCheck, error) {
	const query = `
        SELECT id, client_name, created_at
        FROM status_checks ORDER BY created_at`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	checks := make([]domain.StatusCheck, 0)
	for rows.Next() {
		var check domain.StatusCheck
		if err := rows.Scan(&check.ID, &check.ClientName, &check.Timestamp); err != nil {
			return nil, err
		}
		checks = append(checks, check)
	}
	return checks, rows.Err()
}
