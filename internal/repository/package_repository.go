package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/siports/event-service/internal/domain"
)

// PackageRepository reads the seeded package catalog.
type PackageRepository interface {
	ListByAudience(ctx context.Context, audience domain.PackageAudience) ([]domain.Package, error)
	GetByTier(ctx context.Context, audience domain.PackageAudience, tierName string) (*domain.Package, error)
}

type packageRepository struct {
	pool *pgxpool.Pool
}

// NewPackageRepository returns a Postgres-backed implementation.
func NewPackageRepository(pool *pgxpool.Pool) PackageRepository {
	return &packageRepository{pool: pool}
}

func (r *packageRepository) ListByAudience(ctx context.Context, audience domain.PackageAudience) ([]domain.Package, error) {
	const query = `
        SELECT id, tier_name, audience, price, currency, description, benefits, popular
        FROM packages WHERE audience=$1 ORDER BY price`

	rows, err := r.pool.Query(ctx, query, audience)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	packages := make([]domain.Package, 0)
	for rows.Next() {
		var pkg domain.Package
		if err := rows.Scan(
			&pkg.ID,
			&pkg.TierName,
			&pkg.Audience,
			&pkg.Price,
			&pkg.Currency,
			&pkg.Description,
			&pkg.Benefits,
			&pkg.Popular,
		); err != nil {
			return nil, err
		}
		packages = append(packages, pkg)
	}
	return packages, rows.Err()
}

func (r *packageRepository) GetByTier(ctx context.Context, audience domain.PackageAudience, tierName string) (*domain.Package, error) {
	const query = `
        SELECT id, tier_name, audience, price, currency, description, benefits, popular
        FROM packages WHERE audience=$1 AND tier_name=$2`

	var pkg domain.Package
	if err := r.pool.QueryRow(ctx, query, audience, tierName).Scan(
		&pkg.ID,
		&pkg.TierName,
		&pkg.Audience,
		&pkg.Price,
		&pkg.Currency,
		&pkg.Description,
		&pkg.Benefits,
		&pkg.Popular,
	); err != nil {
		return nil, err
	}
	return &pkg, nil
}
