package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/siports/event-service/internal/chatbot"
	"github.com/siports/event-service/internal/domain"
	"github.com/siports/event-service/internal/repository"
	apperrors "github.com/siports/event-service/pkg/util/errorutil"
)

// ChatReply is the responder output for one exchange.
type ChatReply struct {
	SessionID string
	Context   string
	Response  string
	Timestamp time.Time
}

// ChatService runs the simulated chatbot: rule-table matching plus an
// append-only session log.
type ChatService struct {
	rules      *chatbot.Ruleset
	log        repository.ChatRepository
	sessions   *redis.Client
	sessionTTL time.Duration
	logger     *zap.Logger
}

// NewChatService builds the service. The redis client may be nil; session
// context memory is then skipped.
func NewChatService(rules *chatbot.Ruleset, log repository.ChatRepository, sessions *redis.Client, sessionTTL time.Duration, logger *zap.Logger) *ChatService {
	return &ChatService{
		rules:      rules,
		log:        log,
		sessions:   sessions,
		sessionTTL: sessionTTL,
		logger:     logger,
	}
}

// Respond answers a message. An unrecognized context tag is silently treated
// as general; when no tag is supplied the session's last tag is reused. Both
// sides of the exchange are logged, user row first.
func (s *ChatService) Respond(ctx context.Context, sessionID, message, contextTag string) (*ChatReply, error) {
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	if contextTag == "" {
		contextTag = s.recallContext(ctx, sessionID)
	}
	contextTag = s.rules.Normalize(contextTag)
	s.rememberContext(ctx, sessionID, contextTag)

	response := s.rules.Respond(message, contextTag)
	now := time.Now().UTC()

	userMsg := &domain.ChatMessage{
		ID:         uuid.NewString(),
		SessionID:  sessionID,
		Role:       domain.ChatRoleUser,
		Text:       message,
		ContextTag: &contextTag,
		Timestamp:  now,
	}
	// The bot row sits strictly after the user row so the transcript reads
	// back in exchange order.
	botMsg := &domain.ChatMessage{
		ID:         uuid.NewString(),
		SessionID:  sessionID,
		Role:       domain.ChatRoleBot,
		Text:       response,
		ContextTag: &contextTag,
		Timestamp:  now.Add(time.Millisecond),
	}

	if err := s.log.Append(ctx, userMsg); err != nil {
		return nil, apperrors.NewStoreUnavailable(err)
	}
	if err := s.log.Append(ctx, botMsg); err != nil {
		return nil, apperrors.NewStoreUnavailable(err)
	}

	return &ChatReply{
		SessionID: sessionID,
		Context:   contextTag,
		Response:  response,
		Timestamp: now,
	}, nil
}

// Probe runs a test message through the rule table without touching the log.
func (s *ChatService) Probe(message string) string {
	return s.rules.Respond(message, chatbot.ContextGeneral)
}

func (s *ChatService) recallContext(ctx context.Context, sessionID string) string {
	if s.sessions == nil {
		return ""
	}
	tag, err := s.sessions.Get(ctx, sessionKey(sessionID)).Result()
	if err != nil {
		return ""
	}
	return tag
}

func (s *ChatService) rememberContext(ctx context.Context, sessionID, tag string) {
	if s.sessions == nil {
		return
	}
	if err := s.sessions.Set(ctx, sessionKey(sessionID), tag, s.sessionTTL).Err(); err != nil {
		s.logger.Debug("chat session cache write failed", zap.Error(err))
	}
}

func sessionKey(sessionID string) string {
	return "chat:session:" + sessionID
}
