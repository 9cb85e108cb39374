package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/siports/event-service/internal/domain"
)

// ChatRepository appends and reads chatbot session logs.
type ChatRepository interface {
	Append(ctx context.Context, msg *domain.ChatMessage) error
	ListBySession(ctx context.Context, sessionID string) ([]domain.ChatMessage, error)
}

type chatRepository struct {
	pool *pgxpool.Pool
}

// NewChatRepository returns a Postgres-backed implementation.
func NewChatRepository(pool *pgxpool.Pool) ChatRepository {
	return &chatRepository{pool: pool}
}

func (r *chatRepository) Append(ctx context.Context, msg *domain.ChatMessage) error {
	const query = `
        INSERT INTO chat_messages (id, session_id, role, text, context_tag, created_at)
        VALUES ($1,$2,$3,$4,$5,$6)`
	_, err := r.pool.Exec(ctx, query,
		msg.ID,
		msg.SessionID,
		msg.Role,
		msg.Text,
		msg.ContextTag,
		msg.Timestamp,
	)
	return err
}

func (r *chatRepository) ListBySession(ctx context.Context, sessionID string) ([]domain.ChatMessage, error) {
	const query = `
        SELECT id, session_id, role, text, context_tag, created_at
        FROM chat_messages WHERE session_id=$1 ORDER BY created_at`

	rows, err := r.pool.Query(ctx, query, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	msgs := make([]domain.ChatMessage, 0)
	for rows.Next() {
		var msg domain.ChatMessage
		if err := rows.Scan(
			&msg.ID,
			&msg.SessionID,
			&msg.Role,
			&msg.Text,
			&msg.ContextTag,
			&msg.Timestamp,
		); err != nil {
			return nil, err
		}
		msgs = append(msgs, msg)
	}
	return msgs, rows.Err()
}
