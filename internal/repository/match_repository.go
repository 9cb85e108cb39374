package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/siports/event-service/internal/domain"
)

// MatchProfileRepository persists detailed matchmaking profiles.
type MatchProfileRepository interface {
	Upsert(ctx context.Context, profile *domain.MatchProfile) error
	GetByUserID(ctx context.Context, userID string) (*domain.MatchProfile, error)
}

// InteractionRepository records contact outcomes between accounts.
type InteractionRepository interface {
	Create(ctx context.Context, interaction *domain.Interaction) error
	SuccessfulTargets(ctx context.Context, userID string) (map[string]int, error)
}

type matchProfileRepository struct {
	pool *pgxpool.Pool
}

// NewMatchProfileRepository returns a Postgres-backed implementation.
func NewMatchProfileRepository(pool *pgxpool.Pool) MatchProfileRepository {
	return &matchProfileRepository{pool: pool}
}

func (r *matchProfileRepository) Upsert(ctx context.Context, profile *domain.MatchProfile) error {
	const query = `
        INSERT INTO match_profiles (
            user_id, sectors_activity, products_services, participation_objectives,
            interest_themes, visit_objectives, skills_expertise, looking_for,
            budget_range, company_size, geographic_location, meeting_availability,
            languages, certifications, updated_at
        ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,NOW())
        ON CONFLICT (user_id) DO UPDATE SET
            sectors_activity=EXCLUDED.sectors_activity,
            products_services=EXCLUDED.products_services,
            participation_objectives=EXCLUDED.participation_objectives,
            interest_themes=EXCLUDED.interest_themes,
            visit_objectives=EXCLUDED.visit_objectives,
            skills_expertise=EXCLUDED.skills_expertise,
            looking_for=EXCLUDED.looking_for,
            budget_range=EXCLUDED.budget_range,
            company_size=EXCLUDED.company_size,
            geographic_location=EXCLUDED.geographic_location,
            meeting_availability=EXCLUDED.meeting_availability,
            languages=EXCLUDED.languages,
            certifications=EXCLUDED.certifications,
            updated_at=NOW()`

	_, err := r.pool.Exec(ctx, query,
		profile.UserID,
		profile.SectorsActivity,
		profile.ProductsServices,
		profile.ParticipationObjectives,
		profile.InterestThemes,
		profile.VisitObjectives,
		profile.SkillsExpertise,
		profile.LookingFor,
		profile.BudgetRange,
		profile.CompanySize,
		profile.GeographicLocation,
		profile.MeetingAvailability,
		profile.Languages,
		profile.Certifications,
	)
	return err
}

func (r *matchProfileRepository) GetByUserID(ctx context.Context, userID string) (*domain.MatchProfile, error) {
	const query = `
        SELECT user_id, sectors_activity, products_services, participation_objectives,
               interest_themes, visit_objectives, skills_expertise, looking_for,
               budget_range, company_size, geographic_location, meeting_availability,
               languages, certifications, updated_at
        FROM match_profiles WHERE user_id=$1`

	var profile domain.MatchProfile
	err := r.pool.QueryRow(ctx, query, userID).Scan(
		&profile.UserID,
		&profile.SectorsActivity,
		&profile.ProductsServices,
		&profile.ParticipationObjectives,
		&profile.InterestThemes,
		&profile.VisitObjectives,
		&profile.SkillsExpertise,
		&profile.LookingFor,
		&profile.BudgetRange,
		&profile.CompanySize,
		&profile.GeographicLocation,
		&profile.MeetingAvailability,
		&profile.Languages,
		&profile.Certifications,
		&profile.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

type interactionRepository struct {
	pool *pgxpool.Pool
}

// NewInteractionRepository returns a Postgres-backed implementation.
func NewInteractionRepository(pool *pgxpool.Pool) InteractionRepository {
	return &interactionRepository{pool: pool}
}

func (r *interactionRepository) Create(ctx context.Context, interaction *domain.Interaction) error {
	const query = `
        INSERT INTO interaction_history (id, user_id, target_user_id, interaction_type, compatibility_score, success_indicator, created_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7)`
	_, err := r.pool.Exec(ctx, query,
		interaction.ID,
		interaction.UserID,
		interaction.TargetUserID,
		interaction.InteractionType,
		interaction.CompatibilityScore,
		interaction.Success,
		interaction.CreatedAt,
	)
	return err
}

// SuccessfulTargets returns, per target account, how many successful
// interactions the user has recorded with it.
func (r *interactionRepository) SuccessfulTargets(ctx context.Context, userID string) (map[string]int, error) {
	const query = `
        SELECT target_user_id, COUNT(*)
        FROM interaction_history
        WHERE user_id=$1 AND success_indicator >= 1
        GROUP BY target_user_id`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]int)
	for rows.Next() {
		var (
			targetID string
			count    int
		)
		if err := rows.Scan(&targetID, &count); err != nil {
			return nil, err
		}
		out[targetID] = count
	}
	return out, rows.Err()
}
