package service

import (
	"sort"
	"strings"

	"github.com/siports/event-service/internal/domain"
)

// MatchFactors breaks a compatibility score into its contributing signals.
type MatchFactors struct {
	CommonInterests    []string
	ComplementaryNeeds []string
	SectorAlignment    float64
}

// maritimeTopics maps a topic label to the keywords that signal it in
// free-text profile fields.
var maritimeTopics = map[string][]string{
	"port_management": {"gestion portuaire", "terminaux", "logistique", "manutention", "stockage"},
	"port_equipment":  {"grues", "portiques", "équipements", "automatisation", "robotique"},
	"maritime_tech":   {"navigation", "sécurité maritime", "communication", "radar", "gps"},
	"green_energy":    {"éolien offshore", "hydrogène", "batteries", "énergies renouvelables"},
	"digitalization":  {"iot", "ia", "big data", "digitalisation", "capteurs", "blockchain"},
	"regulations":     {"omi", "solas", "marpol", "conformité", "certification", "audit"},
	"logistics":       {"supply chain", "transport multimodal", "conteneurs", "fret", "douane"},
}

var topicConversationStarters = map[string]string{
	"digitalization":  "Transformation digitale des ports",
	"green_energy":    "Solutions énergies renouvelables offshore",
	"port_management": "Optimisation des opérations portuaires",
	"port_equipment":  "Automatisation des terminaux à conteneurs",
	"logistics":       "Chaînes logistiques multimodales",
}

var genericConversationTopics = []string{
	"Innovations technologiques maritimes",
	"Réglementations internationales récentes",
	"Tendances du marché portuaire",
	"Projets de développement durable",
}

// extractTopics detects maritime topic labels in a profile's free-text
// fields via case-insensitive keyword matching.
func extractTopics(profile *domain.MatchProfile) []string {
	if profile == nil {
		return nil
	}
	var corpus strings.Builder
	for _, group := range [][]string{
		profile.SectorsActivity,
		profile.ProductsServices,
		profile.InterestThemes,
		profile.SkillsExpertise,
	} {
		for _, entry := range group {
			corpus.WriteString(strings.ToLower(entry))
			corpus.WriteString(" ")
		}
	}
	text := corpus.String()

	topics := make([]string, 0)
	for topic, keywords := range maritimeTopics {
		for _, keyword := range keywords {
			if strings.Contains(text, keyword) {
				topics = append(topics, topic)
				break
			}
		}
	}
	// interest themes may name topics directly
	for _, theme := range profile.InterestThemes {
		if _, ok := maritimeTopics[theme]; ok && !contains(topics, theme) {
			topics = append(topics, theme)
		}
	}
	sort.Strings(topics)
	return topics
}

// compatibilityScore applies the weighted factor model: sectors 25,
// objective/offer complementarity 20, shared themes 20, geography 15,
// company size 10, meeting availability 10. Capped at 100.
func compatibilityScore(a, b *domain.MatchProfile) int {
	if a == nil || b == nil {
		return 0
	}
	score := 0

	common := intersect(a.SectorsActivity, b.SectorsActivity)
	score += minInt(25, len(common)*8)

	complementarity := 0
	for _, objective := range a.ParticipationObjectives {
		for _, offer := range b.ProductsServices {
			if wordsOverlap(objective, offer) {
				complementarity++
			}
		}
	}
	score += minInt(20, complementarity*4)

	themes := intersect(a.InterestThemes, b.InterestThemes)
	score += minInt(20, len(themes)*5)

	if len(a.GeographicLocation) > 0 && len(b.GeographicLocation) > 0 {
		if len(intersect(a.GeographicLocation, b.GeographicLocation)) > 0 {
			score += 15
		}
	}

	score += sizeCompatibility(a.CompanySize, b.CompanySize)

	availA := strings.ToLower(a.MeetingAvailability)
	availB := strings.ToLower(b.MeetingAvailability)
	if strings.Contains(availA, "immédiat") || strings.Contains(availB, "immédiat") {
		score += 10
	} else if availA != "" && availB != "" {
		score += 5
	}

	return minInt(100, score)
}

func sizeCompatibility(sizeA, sizeB string) int {
	a := strings.ToLower(sizeA)
	b := strings.ToLower(sizeB)
	if a == "" || b == "" {
		return 0
	}
	pairs := []struct {
		s1, s2 string
		points int
	}{
		{"sme", "enterprise", 10},
		{"sme", "sme", 10},
		{"startup", "enterprise", 8},
		{"startup", "startup", 7},
	}
	for _, pair := range pairs {
		if (strings.Contains(a, pair.s1) && strings.Contains(b, pair.s2)) ||
			(strings.Contains(a, pair.s2) && strings.Contains(b, pair.s1)) {
			return pair.points
		}
	}
	return 0
}

// matchFactors explains why two profiles scored the way they did.
func matchFactors(a, b *domain.MatchProfile) MatchFactors {
	factors := MatchFactors{
		CommonInterests:    intersect(extractTopics(a), extractTopics(b)),
		ComplementaryNeeds: make([]string, 0),
	}

	for _, need := range a.LookingFor {
		for _, offer := range b.ProductsServices {
			if wordsOverlap(need, offer) {
				factors.ComplementaryNeeds = append(factors.ComplementaryNeeds, need+" ← "+offer)
			}
		}
	}

	if len(a.SectorsActivity) > 0 && len(b.SectorsActivity) > 0 {
		overlap := len(intersect(a.SectorsActivity, b.SectorsActivity))
		denom := maxInt(len(a.SectorsActivity), len(b.SectorsActivity))
		factors.SectorAlignment = float64(overlap) / float64(denom)
	}
	return factors
}

func explainMatch(factors MatchFactors, score int) string {
	parts := make([]string, 0, 3)
	if len(factors.CommonInterests) > 0 {
		limit := minInt(2, len(factors.CommonInterests))
		parts = append(parts, "Intérêts communs en "+strings.Join(factors.CommonInterests[:limit], ", "))
	}
	if len(factors.ComplementaryNeeds) > 0 {
		parts = append(parts, "Besoins complémentaires identifiés")
	}
	if factors.SectorAlignment > 0.5 {
		parts = append(parts, "Fort alignement sectoriel")
	}

	var tone string
	switch {
	case score >= 90:
		tone = "Correspondance exceptionnelle"
	case score >= 80:
		tone = "Très bonne compatibilité"
	case score >= 70:
		tone = "Bonne compatibilité"
	default:
		tone = "Compatibilité modérée"
	}

	if len(parts) == 0 {
		return tone + " basée sur l'analyse des profils"
	}
	return tone + ": " + strings.Join(parts, ", ")
}

func businessPotential(score int, factors MatchFactors) string {
	switch {
	case score >= 90 && len(factors.ComplementaryNeeds) >= 2:
		return "Très élevé"
	case score >= 80 && (factors.SectorAlignment > 0.7 || len(factors.CommonInterests) >= 2):
		return "Élevé"
	case score >= 70:
		return "Moyen"
	default:
		return "Faible"
	}
}

func matchRecommendation(score int, factors MatchFactors) string {
	recommendations := make([]string, 0, 3)
	if score >= 85 {
		recommendations = append(recommendations, "Contact prioritaire recommandé")
	}
	if len(factors.ComplementaryNeeds) > 0 {
		recommendations = append(recommendations, "Proposez une collaboration directe")
	}
	if len(factors.CommonInterests) >= 2 {
		recommendations = append(recommendations, "Excellent potentiel de partenariat")
	}
	if len(recommendations) == 0 {
		recommendations = append(recommendations, "Explorez les opportunités de collaboration")
	}
	return strings.Join(recommendations, " • ")
}

func conversationTopics(factors MatchFactors) []string {
	topics := make([]string, 0, 4)
	for _, interest := range factors.CommonInterests {
		if starter, ok := topicConversationStarters[interest]; ok && !contains(topics, starter) {
			topics = append(topics, starter)
		}
	}
	if len(factors.ComplementaryNeeds) > 0 {
		topics = append(topics, "Opportunités de collaboration business")
	}
	for _, generic := range genericConversationTopics {
		if len(topics) >= 3 {
			break
		}
		if !contains(topics, generic) {
			topics = append(topics, generic)
		}
	}
	if len(topics) > 4 {
		topics = topics[:4]
	}
	return topics
}

func wordsOverlap(phrase, candidate string) bool {
	lowered := strings.ToLower(candidate)
	for _, word := range strings.Fields(strings.ToLower(phrase)) {
		if len(word) < 3 {
			continue
		}
		if strings.Contains(lowered, word) {
			return true
		}
	}
	return false
}

func intersect(a, b []string) []string {
	set := make(map[string]struct{}, len(a))
	for _, item := range a {
		set[item] = struct{}{}
	}
	out := make([]string, 0)
	for _, item := range b {
		if _, ok := set[item]; ok && !contains(out, item) {
			out = append(out, item)
		}
	}
	sort.Strings(out)
	return out
}

func contains(items []string, target string) bool {
	for _, item := range items {
		if item == target {
			return true
		}
	}
	return false
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
