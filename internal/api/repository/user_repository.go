package repository

import (
	"context"
	"ctchen222/ShareBnB/internal/api/apperror"
	"ctchen222/ShareBnB/internal/api/models"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("api.repository")

const userColumns = `username, password, email, first_name, last_name, bio, location, is_admin`

// UserRepository defines the interface for user data operations.
type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	UpdateUser(ctx context.Context, user *models.User) error
	DeleteUser(ctx context.Context, username string) error
}

type sqlUserRepository struct {
	db *sqlx.DB
}

// NewUserRepository creates a new sqlx-based UserRepository.
func NewUserRepository(db *sqlx.DB) UserRepository {
	return &sqlUserRepository{db: db}
}

// CreateUser inserts a new user. user.Password must already be hashed.
// A taken username or email yields apperror.ErrDuplicate.
func (r *sqlUserRepository) CreateUser(ctx context.Context, user *models.User) error {
	ctx, span := tracer.Start(ctx, "UserRepository.CreateUser", trace.WithAttributes(
		attribute.String("user.username", user.Username),
	))
	defer span.End()

	query := r.db.Rebind(`INSERT INTO users (` + userColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	_, err := r.db.ExecContext(ctx, query,
		user.Username, user.Password, user.Email, user.FirstName, user.LastName, user.Bio, user.Location, user.IsAdmin)
	if err != nil {
		err = translateError(err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to create user")
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetUserByUsername retrieves a user from the database by their username.
func (r *sqlUserRepository) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	ctx, span := tracer.Start(ctx, "UserRepository.GetUserByUsername", trace.WithAttributes(
		attribute.String("user.username", username),
	))
	defer span.End()

	var user models.User
	query := r.db.Rebind(`SELECT ` + userColumns + ` FROM users WHERE username = ?`)
	if err := r.db.GetContext(ctx, &user, query, username); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.ErrNotFound
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to get user")
		return nil, fmt.Errorf("failed to get user by username: %w", err)
	}
	return &user, nil
}

// UpdateUser writes the editable profile fields of user.
func (r *sqlUserRepository) UpdateUser(ctx context.Context, user *models.User) error {
	ctx, span := tracer.Start(ctx, "UserRepository.UpdateUser", trace.WithAttributes(
		attribute.String("user.username", user.Username),
	))
	defer span.End()

	query := r.db.Rebind(`UPDATE users SET email = ?, first_name = ?, last_name = ?, bio = ?, location = ? WHERE username = ?`)
	res, err := r.db.ExecContext(ctx, query,
		user.Email, user.FirstName, user.LastName, user.Bio, user.Location, user.Username)
	if err != nil {
		err = translateError(err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to update user")
		return fmt.Errorf("failed to update user: %w", err)
	}
	return expectAffected(res.RowsAffected())
}

// DeleteUser removes a user. Their listings and messages go with them through ON DELETE CASCADE.
func (r *sqlUserRepository) DeleteUser(ctx context.Context, username string) error {
	ctx, span := tracer.Start(ctx, "UserRepository.DeleteUser", trace.WithAttributes(
		attribute.String("user.username", username),
	))
	defer span.End()

	res, err := r.db.ExecContext(ctx, r.db.Rebind(`DELETE FROM users WHERE username = ?`), username)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to delete user")
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return expectAffected(res.RowsAffected())
}
