package dto

import "time"

// MatchFindRequest filters a matchmaking run.
type MatchFindRequest struct {
	MatchTypes       []string `json:"match_types,omitempty"`
	MinCompatibility int      `json:"min_compatibility,omitempty"`
	Limit            int      `json:"limit,omitempty"`
}

// MatchResultView is one scored candidate.
type MatchResultView struct {
	UserID             string   `json:"user_id"`
	CompatibilityScore int      `json:"compatibility_score"`
	Explanation        string   `json:"explanation"`
	MutualInterests    []string `json:"mutual_interests"`
	BusinessPotential  string   `json:"business_potential"`
	Recommendation     string   `json:"ai_recommendation"`
	ConversationTopics []string `json:"conversation_topics"`
}

// MatchProfileRequest updates the detailed matchmaking profile.
type MatchProfileRequest struct {
	SectorsActivity         []string `json:"sectors_activity"`
	ProductsServices        []string `json:"products_services"`
	ParticipationObjectives []string `json:"participation_objectives"`
	InterestThemes          []string `json:"interest_themes"`
	VisitObjectives         []string `json:"visit_objectives"`
	SkillsExpertise         []string `json:"skills_expertise"`
	LookingFor              []string `json:"looking_for"`
	BudgetRange             string   `json:"budget_range"`
	CompanySize             string   `json:"company_size"`
	GeographicLocation      []string `json:"geographic_location"`
	MeetingAvailability     string   `json:"meeting_availability"`
	Languages               []string `json:"languages"`
	Certifications          []string `json:"certifications"`
}

// RecommendationView is one proactive suggestion.
type RecommendationView struct {
	Type            string    `json:"type"`
	Title           string    `json:"title"`
	Content         string    `json:"content"`
	ConfidenceScore int       `json:"confidence_score"`
	Actions         []string  `json:"actions"`
	ExpiresAt       time.Time `json:"expires_at"`
}

// FeedbackRequest records an interaction outcome.
type FeedbackRequest struct {
	TargetUserID    string `json:"target_user_id"`
	InteractionType string `json:"interaction_type"`
	Success         int    `json:"success"`
}
