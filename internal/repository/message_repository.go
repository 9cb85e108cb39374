package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/siports/event-service/internal/domain"
)

// MessageRepository persists user-to-user messages.
type MessageRepository interface {
	Create(ctx context.Context, msg *domain.Message) error
	ListConversation(ctx context.Context, userID, contactID string) ([]domain.Message, error)
	ListConversations(ctx context.Context, userID string) ([]domain.Conversation, error)
	MarkRead(ctx context.Context, senderID, recipientID string) error
	UnreadCount(ctx context.Context, recipientID string) (int, error)
}

type messageRepository struct {
	pool *pgxpool.Pool
}

// NewMessageRepository returns a Postgres-backed implementation.
func NewMessageRepository(pool *pgxpool.Pool) MessageRepository {
	return &messageRepository{pool: pool}
}

func (r *messageRepository) Create(ctx context.Context, msg *domain.Message) error {
	const query = `
        INSERT INTO messages (id, sender_id, recipient_id, content, message_type, is_read, created_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7)`
	_, err := r.pool.Exec(ctx, query,
		msg.ID,
		msg.SenderID,
		msg.RecipientID,
		msg.Content,
		msg.MessageType,
		msg.IsRead,
		msg.CreatedAt,
	)
	return err
}

func (r *messageRepository) ListConversation(ctx context.Context, userID, contactID string) ([]domain.Message, error) {
	const query = `
        SELECT id, sender_id, recipient_id, content, message_type, is_read, created_at
        FROM messages
        WHERE (sender_id=$1 AND recipient_id=$2) OR (sender_id=$2 AND recipient_id=$1)
        ORDER BY created_at`

	rows, err := r.pool.Query(ctx, query, userID, contactID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	msgs := make([]domain.Message, 0)
	for rows.Next() {
		var msg domain.Message
		if err := rows.Scan(
			&msg.ID,
			&msg.SenderID,
			&msg.RecipientID,
			&msg.Content,
			&msg.MessageType,
			&msg.IsRead,
			&msg.CreatedAt,
		); err != nil {
			return nil, err
		}
		msgs = append(msgs, msg)
	}
	return msgs, rows.Err()
}

func (r *messageRepository) ListConversations(ctx context.Context, userID string) ([]domain.Conversation, error) {
	const query = `
        WITH contacts AS (
            SELECT DISTINCT CASE WHEN sender_id=$1 THEN recipient_id ELSE sender_id END AS contact_id
            FROM messages
            WHERE sender_id=$1 OR recipient_id=$1
        )
        SELECT c.contact_id,
               u.first_name, u.last_name, u.company, u.role,
               last.content, last.created_at,
               COALESCE(unread.cnt, 0)
        FROM contacts c
        JOIN users u ON u.id = c.contact_id
        JOIN LATERAL (
            SELECT content, created_at FROM messages m
            WHERE (m.sender_id=$1 AND m.recipient_id=c.contact_id)
               OR (m.sender_id=c.contact_id AND m.recipient_id=$1)
            ORDER BY m.created_at DESC LIMIT 1
        ) last ON TRUE
        LEFT JOIN LATERAL (
            SELECT COUNT(*) AS cnt FROM messages m
            WHERE m.sender_id=c.contact_id AND m.recipient_id=$1 AND m.is_read=FALSE
        ) unread ON TRUE
        ORDER BY last.created_at DESC`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	conversations := make([]domain.Conversation, 0)
	for rows.Next() {
		var (
			conv      domain.Conversation
			firstName string
			lastName  string
		)
		if err := rows.Scan(
			&conv.ContactID,
			&firstName,
			&lastName,
			&conv.Company,
			&conv.ContactRole,
			&conv.LastMessage,
			&conv.LastMessageAt,
			&conv.UnreadCount,
		); err != nil {
			return nil, err
		}
		conv.ContactName = joinName(firstName, lastName)
		conversations = append(conversations, conv)
	}
	return conversations, rows.Err()
}

func (r *messageRepository) MarkRead(ctx context.Context, senderID, recipientID string) error {
	const query = `
        UPDATE messages SET is_read=TRUE
        WHERE sender_id=$1 AND recipient_id=$2 AND is_read=FALSE`
	_, err := r.pool.Exec(ctx, query, senderID, recipientID)
	return err
}

func (r *messageRepository) UnreadCount(ctx context.Context, recipientID string) (int, error) {
	const query = `
        SELECT COUNT(*) FROM messages WHERE recipient_id=$1 AND is_read=FALSE`
	var count int
	if err := r.pool.QueryRow(ctx, query, recipientID).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func joinName(first, last string) string {
	switch {
	case first == "":
		return last
	case last == "":
		return first
	default:
		return first + " " + last
	}
}
