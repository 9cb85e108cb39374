package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/siports/event-service/internal/domain"
	"github.com/siports/event-service/internal/repository"
	apperrors "github.com/siports/event-service/pkg/util/errorutil"
)

// MatchQuery filters a matchmaking run.
type MatchQuery struct {
	UserID           string
	Roles            []domain.Role
	MinCompatibility int
	Limit            int
}

// trend is one entry of the fixed maritime trend table used for proactive
// recommendations.
type trend struct {
	Topic       string
	Strength    float64
	Sectors     []string
	Description string
	GrowthRate  string
}

var maritimeTrends = []trend{
	{
		Topic:       "Intelligence Artificielle Portuaire",
		Strength:    0.85,
		Sectors:     []string{"digitalization", "port_management"},
		Description: "Adoption croissante de l'IA pour l'optimisation des opérations portuaires",
		GrowthRate:  "+45%",
	},
	{
		Topic:       "Énergies Renouvelables Offshore",
		Strength:    0.78,
		Sectors:     []string{"green_energy", "maritime_tech"},
		Description: "Expansion des projets éoliens offshore et solutions d'hydrogène vert",
		GrowthRate:  "+32%",
	},
	{
		Topic:       "Automatisation Terminaux",
		Strength:    0.72,
		Sectors:     []string{"port_equipment", "digitalization"},
		Description: "Investissement massif dans l'automatisation des terminaux à conteneurs",
		GrowthRate:  "+28%",
	},
	{
		Topic:       "Durabilité et Décarbonation",
		Strength:    0.68,
		Sectors:     []string{"green_energy", "regulations"},
		Description: "Nouvelles réglementations environnementales et solutions vertes",
		GrowthRate:  "+25%",
	},
}

// MatchService scores validated accounts against each other using the
// weighted profile model plus recorded interaction history.
type MatchService struct {
	profiles     repository.MatchProfileRepository
	interactions repository.InteractionRepository
	users        repository.UserRepository
}

// NewMatchService builds the service.
func NewMatchService(profiles repository.MatchProfileRepository, interactions repository.InteractionRepository, users repository.UserRepository) *MatchService {
	return &MatchService{profiles: profiles, interactions: interactions, users: users}
}

// FindMatches scores validated candidates against the requesting account.
func (s *MatchService) FindMatches(ctx context.Context, query MatchQuery) ([]domain.MatchResult, error) {
	if query.MinCompatibility <= 0 {
		query.MinCompatibility = 70
	}
	if query.Limit <= 0 {
		query.Limit = 20
	}

	requester, err := s.profileOrEmpty(ctx, query.UserID)
	if err != nil {
		return nil, err
	}

	candidates, err := s.users.ListValidated(ctx, query.UserID, query.Roles, query.Limit*2)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	successCounts, err := s.interactions.SuccessfulTargets(ctx, query.UserID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	results := make([]domain.MatchResult, 0, len(candidates))
	for i := range candidates {
		candidate := &candidates[i]
		candidateProfile, err := s.profileOrEmpty(ctx, candidate.ID)
		if err != nil {
			return nil, err
		}

		score := compatibilityScore(requester, candidateProfile)
		if count := successCounts[candidate.ID]; count > 0 {
			// past successful contact nudges the score upward
			boost := 1 + 0.05*math.Log(1+float64(count))
			score = minInt(100, int(float64(score)*boost))
		}
		if score < query.MinCompatibility {
			continue
		}

		factors := matchFactors(requester, candidateProfile)
		results = append(results, domain.MatchResult{
			MatchedUserID:      candidate.ID,
			CompatibilityScore: score,
			Explanation:        explainMatch(factors, score),
			MutualInterests:    factors.CommonInterests,
			BusinessPotential:  businessPotential(score, factors),
			Recommendation:     matchRecommendation(score, factors),
			ConversationTopics: conversationTopics(factors),
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].CompatibilityScore > results[j].CompatibilityScore
	})
	if len(results) > query.Limit {
		results = results[:query.Limit]
	}
	return results, nil
}

// Recommendations derives proactive suggestions from the fixed trend table
// and the caller's interest themes.
func (s *MatchService) Recommendations(ctx context.Context, userID string) ([]domain.Recommendation, error) {
	profile, err := s.profileOrEmpty(ctx, userID)
	if err != nil {
		return nil, err
	}
	interests := extractTopics(profile)

	recommendations := make([]domain.Recommendation, 0)
	for _, tr := range maritimeTrends {
		if len(intersect(interests, tr.Sectors)) == 0 {
			continue
		}
		recommendations = append(recommendations, domain.Recommendation{
			UserID:          userID,
			Type:            "trending_topic",
			Title:           "Tendance détectée: " + tr.Topic,
			Content:         fmt.Sprintf("%s (Croissance: %s)", tr.Description, tr.GrowthRate),
			ConfidenceScore: int(tr.Strength * 100),
			Actions: []string{
				"Rechercher des partenaires dans cette thématique",
				"Actualiser votre profil avec ces mots-clés",
				"Participer aux discussions sur ce sujet",
			},
			ExpiresAt: time.Now().Add(7 * 24 * time.Hour),
		})
	}
	return recommendations, nil
}

// UpdateProfile stores the caller's detailed matchmaking profile.
func (s *MatchService) UpdateProfile(ctx context.Context, profile *domain.MatchProfile) error {
	if profile.UserID == "" {
		return apperrors.NewValidationError("user id is required", nil)
	}
	if err := s.profiles.Upsert(ctx, profile); err != nil {
		return apperrors.MapError(err)
	}
	return nil
}

// Profile returns the stored profile, or an empty one when none exists yet.
func (s *MatchService) Profile(ctx context.Context, userID string) (*domain.MatchProfile, error) {
	return s.profileOrEmpty(ctx, userID)
}

// RecordFeedback stores an interaction outcome along with the compatibility
// score at the time of recording.
func (s *MatchService) RecordFeedback(ctx context.Context, userID, targetUserID, interactionType string, success int) error {
	requester, err := s.profileOrEmpty(ctx, userID)
	if err != nil {
		return err
	}
	target, err := s.profileOrEmpty(ctx, targetUserID)
	if err != nil {
		return err
	}

	interaction := &domain.Interaction{
		ID:                 uuid.NewString(),
		UserID:             userID,
		TargetUserID:       targetUserID,
		InteractionType:    interactionType,
		CompatibilityScore: compatibilityScore(requester, target),
		Success:            success,
		CreatedAt:          time.Now().UTC(),
	}
	if err := s.interactions.Create(ctx, interaction); err != nil {
		return apperrors.MapError(err)
	}
	return nil
}

func (s *MatchService) profileOrEmpty(ctx context.Context, userID string) (*domain.MatchProfile, error) {
	profile, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &domain.MatchProfile{UserID: userID}, nil
		}
		return nil, apperrors.MapError(err)
	}
	return profile, nil
}
