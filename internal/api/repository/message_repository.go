package repository

import (
	"context"
	"ctchen222/ShareBnB/internal/api/models"
	"fmt"

	"github.com/jmoiron/sqlx"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const messageColumns = `id, text, time_sent, to_user, from_user, listing_id`

// MessageRepository defines the interface for message data operations.
type MessageRepository interface {
	CreateMessage(ctx context.Context, message *models.Message) error
	Inbox(ctx context.Context, username string) ([]models.Message, error)
	DeleteMessage(ctx context.Context, id int64) error
}

type sqlMessageRepository struct {
	db *sqlx.DB
}

// NewMessageRepository creates a new sqlx-based MessageRepository.
func NewMessageRepository(db *sqlx.DB) MessageRepository {
	return &sqlMessageRepository{db: db}
}

// CreateMessage inserts message and sets its ID.
func (r *sqlMessageRepository) CreateMessage(ctx context.Context, message *models.Message) error {
	ctx, span := tracer.Start(ctx, "MessageRepository.CreateMessage", trace.WithAttributes(
		attribute.String("message.from_user", message.FromUser),
		attribute.String("message.to_user", message.ToUser),
		attribute.Int64("listing.id", message.ListingID),
	))
	defer span.End()

	query := r.db.Rebind(`INSERT INTO messages (text, time_sent, to_user, from_user, listing_id)
		VALUES (?, ?, ?, ?, ?) RETURNING id`)
	err := r.db.QueryRowxContext(ctx, query,
		message.Text, message.TimeSent, message.ToUser, message.FromUser, message.ListingID,
	).Scan(&message.ID)
	if err != nil {
		err = translateError(err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to create message")
		return fmt.Errorf("failed to create message: %w", err)
	}
	return nil
}

// Inbox returns every message addressed to username, oldest first.
func (r *sqlMessageRepository) Inbox(ctx context.Context, username string) ([]models.Message, error) {
	ctx, span := tracer.Start(ctx, "MessageRepository.Inbox", trace.WithAttributes(
		attribute.String("message.to_user", username),
	))
	defer span.End()

	messages := []models.Message{}
	query := r.db.Rebind(`SELECT ` + messageColumns + ` FROM messages WHERE to_user = ? ORDER BY time_sent, id`)
	if err := r.db.SelectContext(ctx, &messages, query, username); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to load inbox")
		return nil, fmt.Errorf("failed to load inbox: %w", err)
	}
	return messages, nil
}

// DeleteMessage removes a message by id.
func (r *sqlMessageRepository) DeleteMessage(ctx context.Context, id int64) error {
	ctx, span := tracer.Start(ctx, "MessageRepository.DeleteMessage", trace.WithAttributes(
		attribute.Int64("message.id", id),
	))
	defer span.End()

	res, err := r.db.ExecContext(ctx, r.db.Rebind(`DELETE FROM messages WHERE id = ?`), id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to delete message")
		return fmt.Errorf("failed to delete message: %w", err)
	}
	return expectAffected(res.RowsAffected())
}
