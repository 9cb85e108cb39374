package repository

import (
	"context"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/siports/event-service/internal/domain"
)

// UserCounts aggregates account totals for the admin dashboard.
type UserCounts struct {
	Total      int
	Visitors   int
	Exhibitors int
	Partners   int
	Pending    int
	Validated  int
	Rejected   int
}

// UserRepository defines persistence access for accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	UpdateValidationState(ctx context.Context, id string, state domain.ValidationState) error
	UpdateVisitorPackage(ctx context.Context, id, tierName string) error
	UpdatePartnershipPackage(ctx context.Context, id, tierName string) error
	ListPending(ctx context.Context) ([]domain.User, error)
	ListValidated(ctx context.Context, excludeID string, roles []domain.Role, limit int) ([]domain.User, error)
	Counts(ctx context.Context) (*UserCounts, error)
}

type userRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository returns a Postgres-backed implementation.
func NewUserRepository(pool *pgxpool.Pool) UserRepository {
	return &userRepository{pool: pool}
}

const userColumns = `id, email, password_hash, role, validation_state,
        first_name, last_name, company, phone, visitor_package, partnership_package, created_at`

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	const query = `
        INSERT INTO users (email, password_hash, role, validation_state, first_name, last_name, company, phone, visitor_package, partnership_package)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
        RETURNING id, created_at`

	return r.pool.QueryRow(ctx, query,
		user.Email,
		user.PasswordHash,
		user.Role,
		user.ValidationState,
		user.FirstName,
		user.LastName,
		user.Company,
		user.Phone,
		user.VisitorPackage,
		user.PartnershipPackage,
	).Scan(&user.ID, &user.CreatedAt)
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return r.fetchSingle(ctx, `SELECT `+userColumns+` FROM users WHERE id=$1`, id)
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.fetchSingle(ctx, `SELECT `+userColumns+` FROM users WHERE email=$1`, email)
}

func (r *userRepository) UpdateValidationState(ctx context.Context, id string, state domain.ValidationState) error {
	const query = `UPDATE users SET validation_state=$1 WHERE id=$2`
	cmd, err := r.pool.Exec(ctx, query, state, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *userRepository) UpdateVisitorPackage(ctx context.Context, id, tierName string) error {
	const query = `UPDATE users SET visitor_package=$1 WHERE id=$2`
	cmd, err := r.pool.Exec(ctx, query, tierName, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *userRepository) UpdatePartnershipPackage(ctx context.Context, id, tierName string) error {
	const query = `UPDATE users SET partnership_package=$1 WHERE id=$2`
	cmd, err := r.pool.Exec(ctx, query, tierName, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *userRepository) ListPending(ctx context.Context) ([]domain.User, error) {
	const query = `
        SELECT ` + userColumns + `
        FROM users WHERE validation_state='pending'
        ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanUsers(rows)
}

func (r *userRepository) ListValidated(ctx context.Context, excludeID string, roles []domain.Role, limit int) ([]domain.User, error) {
	query := `
        SELECT ` + userColumns + `
        FROM users WHERE validation_state='validated' AND id<>$1`
	args := []any{excludeID}
	if len(roles) > 0 {
		query += ` AND role = ANY($2)`
		roleStrs := make([]string, 0, len(roles))
		for _, role := range roles {
			roleStrs = append(roleStrs, string(role))
		}
		args = append(args, roleStrs)
	}
	query += ` ORDER BY created_at`
	if limit > 0 {
		query += ` LIMIT ` + strconv.Itoa(limit)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanUsers(rows)
}

func (r *userRepository) Counts(ctx context.Context) (*UserCounts, error) {
	const query = `
        SELECT
            COUNT(*),
            COUNT(*) FILTER (WHERE role='visitor'),
            COUNT(*) FILTER (WHERE role='exhibitor'),
            COUNT(*) FILTER (WHERE role='partner'),
            COUNT(*) FILTER (WHERE validation_state='pending'),
            COUNT(*) FILTER (WHERE validation_state='validated'),
            COUNT(*) FILTER (WHERE validation_state='rejected')
        FROM users`

	var counts UserCounts
	if err := r.pool.QueryRow(ctx, query).Scan(
		&counts.Total,
		&counts.Visitors,
		&counts.Exhibitors,
		&counts.Partners,
		&counts.Pending,
		&counts.Validated,
		&counts.Rejected,
	); err != nil {
		return nil, err
	}
	return &counts, nil
}

func (r *userRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.User, error) {
	var user domain.User
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.Role,
		&user.ValidationState,
		&user.FirstName,
		&user.LastName,
		&user.Company,
		&user.Phone,
		&user.VisitorPackage,
		&user.PartnershipPackage,
		&user.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &user, nil
}

func scanUsers(rows pgx.Rows) ([]domain.User, error) {
	users := make([]domain.User, 0)
	for rows.Next() {
		var user domain.User
		if err := rows.Scan(
			&user.ID,
			&user.Email,
			&user.PasswordHash,
			&user.Role,
			&user.ValidationState,
			&user.FirstName,
			&user.LastName,
			&user.Company,
			&user.Phone,
			&user.VisitorPackage,
			&user.PartnershipPackage,
			&user.CreatedAt,
		); err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}
