package service

import (
	"testing"

	"github.com/siports/event-service/internal/domain"
)

func fullProfile(userID string) *domain.MatchProfile {
	return &domain.MatchProfile{
		UserID:                  userID,
		SectorsActivity:         []string{"gestion portuaire", "logistique"},
		ProductsServices:        []string{"solutions iot", "automatisation des terminaux"},
		ParticipationObjectives: []string{"trouver des solutions iot"},
		InterestThemes:          []string{"digitalisation", "iot"},
		GeographicLocation:      []string{"Maroc", "France"},
		CompanySize:             "sme",
		MeetingAvailability:     "immédiat",
	}
}

func TestCompatibilityScore_FullOverlap(t *testing.T) {
	t.Parallel()

	a := fullProfile("a")
	b := fullProfile("b")

	score := compatibilityScore(a, b)
	if score < 60 {
		t.Errorf("score = %d, want at least 60 for heavily overlapping profiles", score)
	}
	if score > 100 {
		t.Errorf("score = %d, must be capped at 100", score)
	}
}

func TestCompatibilityScore_EmptyAndNil(t *testing.T) {
	t.Parallel()

	if got := compatibilityScore(nil, fullProfile("b")); got != 0 {
		t.Errorf("nil profile scored %d, want 0", got)
	}
	if got := compatibilityScore(&domain.MatchProfile{}, &domain.MatchProfile{}); got != 0 {
		t.Errorf("empty profiles scored %d, want 0", got)
	}
}

func TestCompatibilityScore_Availability(t *testing.T) {
	t.Parallel()

	base := func() (*domain.MatchProfile, *domain.MatchProfile) {
		return &domain.MatchProfile{}, &domain.MatchProfile{}
	}

	a, b := base()
	a.MeetingAvailability = "immédiat"
	if got := compatibilityScore(a, b); got != 10 {
		t.Errorf("immediate availability scored %d, want 10", got)
	}

	a, b = base()
	a.MeetingAvailability = "semaine prochaine"
	b.MeetingAvailability = "flexible"
	if got := compatibilityScore(a, b); got != 5 {
		t.Errorf("both-set availability scored %d, want 5", got)
	}

	a, b = base()
	a.MeetingAvailability = "flexible"
	if got := compatibilityScore(a, b); got != 0 {
		t.Errorf("one-sided availability scored %d, want 0", got)
	}
}

func TestSizeCompatibility(t *testing.T) {
	t.Parallel()

	cases := []struct {
		a, b string
		want int
	}{
		{"sme", "enterprise", 10},
		{"enterprise", "sme", 10},
		{"sme", "sme", 10},
		{"startup", "enterprise", 8},
		{"startup", "startup", 7},
		{"", "enterprise", 0},
		{"startup", "", 0},
	}
	for _, tc := range cases {
		if got := sizeCompatibility(tc.a, tc.b); got != tc.want {
			t.Errorf("sizeCompatibility(%q, %q) = %d, want %d", tc.a, tc.b, got, tc.want)
		}
	}
}

func TestExtractTopics(t *testing.T) {
	t.Parallel()

	profile := &domain.MatchProfile{
		SectorsActivity: []string{"Gestion portuaire et terminaux"},
		InterestThemes:  []string{"green_energy"},
		SkillsExpertise: []string{"Capteurs IoT et big data"},
	}

	topics := extractTopics(profile)

	wantPresent := []string{"port_management", "digitalization", "green_energy"}
	for _, topic := range wantPresent {
		if !contains(topics, topic) {
			t.Errorf("topics %v missing %q", topics, topic)
		}
	}

	if extractTopics(nil) != nil {
		t.Error("nil profile must yield no topics")
	}
}

func TestWordsOverlap(t *testing.T) {
	t.Parallel()

	if !wordsOverlap("trouver des solutions IoT", "Solutions IoT pour terminaux") {
		t.Error("shared significant words must overlap")
	}
	if wordsOverlap("de la un", "le grand large") {
		t.Error("words shorter than three characters must be ignored")
	}
	if wordsOverlap("", "anything") {
		t.Error("empty phrase cannot overlap")
	}
}

func TestIntersect(t *testing.T) {
	t.Parallel()

	got := intersect([]string{"a", "b", "c"}, []string{"c", "b", "b", "d"})
	if len(got) != 2 || got[0] != "b" || got[1] != "c" {
		t.Errorf("intersect = %v, want [b c] sorted and deduplicated", got)
	}
}

func TestExplainMatch_Tone(t *testing.T) {
	t.Parallel()

	factors := MatchFactors{CommonInterests: []string{"digitalization"}}

	high := explainMatch(factors, 92)
	low := explainMatch(factors, 55)
	if high == low {
		t.Error("explanation must change with the score band")
	}
}

func TestConversationTopics_Bounds(t *testing.T) {
	t.Parallel()

	factors := MatchFactors{
		CommonInterests:    []string{"digitalization", "green_energy", "port_management", "logistics"},
		ComplementaryNeeds: []string{"x"},
	}
	topics := conversationTopics(factors)
	if len(topics) == 0 || len(topics) > 4 {
		t.Errorf("got %d topics, want between 1 and 4", len(topics))
	}

	empty := conversationTopics(MatchFactors{})
	if len(empty) != 3 {
		t.Errorf("empty factors yielded %d topics, want the 3 generic fillers", len(empty))
	}
}
