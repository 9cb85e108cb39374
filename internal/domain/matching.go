package domain

import "time"

// MatchProfile holds the detailed matchmaking attributes an account fills in
// on top of its base registration data.
type MatchProfile struct {
	UserID                  string
	SectorsActivity         []string
	ProductsServices        []string
	ParticipationObjectives []string
	InterestThemes          []string
	VisitObjectives         []string
	SkillsExpertise         []string
	LookingFor              []string
	BudgetRange             string
	CompanySize             string
	GeographicLocation      []string
	MeetingAvailability     string
	Languages               []string
	Certifications          []string
	UpdatedAt               time.Time
}

// Interaction records the outcome of a contact between two accounts, used to
// weight future match scores.
type Interaction struct {
	ID                 string
	UserID             string
	TargetUserID       string
	InteractionType    string
	CompatibilityScore int
	Success            int
	CreatedAt          time.Time
}

// MatchResult is one scored candidate returned by the matchmaker.
type MatchResult struct {
	MatchedUserID      string
	CompatibilityScore int
	Explanation        string
	MutualInterests    []string
	BusinessPotential  string
	Recommendation     string
	ConversationTopics []string
}

// Recommendation is a proactive suggestion pushed to an account.
type Recommendation struct {
	UserID          string
	Type            string
	Title           string
	Content         string
	ConfidenceScore int
	Actions         []string
	ExpiresAt       time.Time
}
