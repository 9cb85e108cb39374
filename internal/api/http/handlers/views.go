package handlers

import (
	"github.com/siports/event-service/internal/api/dto"
	"github.com/siports/event-service/internal/domain"
)

func userView(u *domain.User) dto.UserView {
	return dto.UserView{
		ID:                 u.ID,
		Email:              u.Email,
		FirstName:          u.FirstName,
		LastName:           u.LastName,
		Company:            u.Company,
		UserType:           string(u.Role),
		ValidationState:    string(u.ValidationState),
		VisitorPackage:     u.VisitorPackage,
		PartnershipPackage: u.PartnershipPackage,
		CreatedAt:          u.CreatedAt,
	}
}

func userViews(users []domain.User) []dto.UserView {
	views := make([]dto.UserView, 0, len(users))
	for i := range users {
		views = append(views, userView(&users[i]))
	}
	return views
}

func packageView(p *domain.Package) dto.PackageView {
	return dto.PackageView{
		ID:          p.ID,
		Name:        p.TierName,
		Price:       p.Price,
		Currency:    p.Currency,
		Description: p.Description,
		Features:    p.Benefits,
		Popular:     p.Popular,
	}
}

func packageViews(packages []domain.Package) []dto.PackageView {
	views := make([]dto.PackageView, 0, len(packages))
	for i := range packages {
		views = append(views, packageView(&packages[i]))
	}
	return views
}

func messageView(m *domain.Message, viewerID string) dto.MessageView {
	return dto.MessageView{
		ID:           m.ID,
		SenderID:     m.SenderID,
		RecipientID:  m.RecipientID,
		Content:      m.Content,
		MessageType:  string(m.MessageType),
		IsRead:       m.IsRead,
		CreatedAt:    m.CreatedAt,
		IsOwnMessage: m.SenderID == viewerID,
	}
}

func conversationView(c *domain.Conversation) dto.ConversationView {
	return dto.ConversationView{
		ContactID:     c.ContactID,
		ContactName:   c.ContactName,
		Company:       c.Company,
		UserType:      string(c.ContactRole),
		LastMessage:   c.LastMessage,
		LastMessageAt: c.LastMessageAt,
		UnreadCount:   c.UnreadCount,
	}
}

func matchResultView(m *domain.MatchResult) dto.MatchResultView {
	return dto.MatchResultView{
		UserID:             m.MatchedUserID,
		CompatibilityScore: m.CompatibilityScore,
		Explanation:        m.Explanation,
		MutualInterests:    m.MutualInterests,
		BusinessPotential:  m.BusinessPotential,
		Recommendation:     m.Recommendation,
		ConversationTopics: m.ConversationTopics,
	}
}

func recommendationView(r *domain.Recommendation) dto.RecommendationView {
	return dto.RecommendationView{
		Type:            r.Type,
		Title:           r.Title,
		Content:         r.Content,
		ConfidenceScore: r.ConfidenceScore,
		Actions:         r.Actions,
		ExpiresAt:       r.ExpiresAt,
	}
}
