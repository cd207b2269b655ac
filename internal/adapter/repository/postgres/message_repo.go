package postgres

import (
	"context"
	"fmt"

	"github.com/ayyavumurugesan-construction/Ayyavu-Construction/internal/platform/logger"
	"github.com/ayyavumurugesan-construction/Ayyavu-Construction/internal/property/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// MessageRepository implements domain.MessageRepository on PostgreSQL.
type MessageRepository struct {
	pool   *pgxpool.Pool
	logger *logger.Logger
}

func NewMessageRepository(pool *pgxpool.Pool, log *logger.Logger) (*MessageRepository, error) {
	if pool == nil {
		return nil, fmt.Errorf("pgxpool.Pool cannot be nil")
	}
	return &MessageRepository{pool: pool, logger: log.Named("PostgresMessageRepository")}, nil
}

func (r *MessageRepository) Create(ctx context.Context, msg *domain.ContactMessage) error {
	id := uuid.New()
	_, err := r.pool.Exec(ctx,
		`INSERT INTO contact_messages (id, name, email, phone, message, created_at) VALUES ($1, $2, $3, $4, $5, $6)`,
		id, msg.Name, msg.Email, msg.Phone, msg.Message, msg.CreatedAt)
	if err != nil {
		r.logger.Error("Failed to insert contact message", zap.Error(err))
		return fmt.Errorf("db insert failed: %w", err)
	}
	msg.ID = id.String()
	return nil
}

func (r *MessageRepository) List(ctx context.Context) ([]*domain.ContactMessage, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, email, phone, message, created_at FROM contact_messages ORDER BY created_at DESC`)
	if err != nil {
		r.logger.Error("Failed to query contact messages", zap.Error(err))
		return nil, fmt.Errorf("db select failed: %w", err)
	}
	defer rows.Close()

	out := []*domain.ContactMessage{}
	for rows.Next() {
		var (
			m  domain.ContactMessage
			id uuid.UUID
		)
		if err := rows.Scan(&id, &m.Name, &m.Email, &m.Phone, &m.Message, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan message row: %w", err)
		}
		m.ID = id.String()
		m.CreatedAt = m.CreatedAt.UTC()
		out = append(out, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error during messages iteration: %w", err)
	}
	return out, nil
}

func (r *MessageRepository) Delete(ctx context.Context, id string) error {
	uid, err := parseUUID(id)
	if err != nil {
		return err
	}
	tag, err := r.pool.Exec(ctx, `DELETE FROM contact_messages WHERE id = $1`, uid)
	if err != nil {
		r.logger.Error("Failed to delete contact message", zap.Error(err), zap.String("message_id", id))
		return fmt.Errorf("db delete failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
