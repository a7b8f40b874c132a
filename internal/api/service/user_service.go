package service

import (
	"context"
	"ctchen222/ShareBnB/internal/api/apperror"
	"ctchen222/ShareBnB/internal/api/models"
	"ctchen222/ShareBnB/internal/api/repository"
	"ctchen222/ShareBnB/internal/auth"
	"ctchen222/ShareBnB/internal/validator"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

// ErrInvalidCredentials is returned by Login for an unknown user or a wrong password alike.
var ErrInvalidCredentials = errors.New("invalid username or password")

// ErrLogoutUnavailable is returned by Logout when no revocation store is configured.
var ErrLogoutUnavailable = errors.New("token revocation is not configured")

// PasswordHasher hashes and checks passwords.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, digest string) bool
}

// TokenIssuer mints access tokens for users.
type TokenIssuer interface {
	Issue(user *models.User) (string, error)
}

//go:generate mockgen -destination=mocks/mock_service.go -package=mocks . UserService,ListingService,MessageService

// UserService defines the interface for user-related business logic.
type UserService interface {
	Signup(ctx context.Context, req *models.SignupRequest) (string, error)
	Login(ctx context.Context, req *models.LoginRequest) (string, error)
	Authenticate(ctx context.Context, username, password string) (*models.User, bool, error)
	Logout(ctx context.Context, claims *auth.Claims) error
	GetUser(ctx context.Context, username string) (*models.User, error)
	UpdateUser(ctx context.Context, actor, username string, req *models.UpdateUserRequest) (*models.User, error)
	DeleteUser(ctx context.Context, username string) error
}

type userService struct {
	userRepo repository.UserRepository
	hasher   PasswordHasher
	issuer   TokenIssuer
	revoker  auth.Revoker
}

// NewUserService creates a new UserService. revoker may be nil, in which case Logout is unavailable.
func NewUserService(userRepo repository.UserRepository, hasher PasswordHasher, issuer TokenIssuer, revoker auth.Revoker) UserService {
	return &userService{
		userRepo: userRepo,
		hasher:   hasher,
		issuer:   issuer,
		revoker:  revoker,
	}
}

// Signup hashes the password, stores the new user and returns a token for them.
// The datastore's unique constraints decide whether the username or email is taken.
func (s *userService) Signup(ctx context.Context, req *models.SignupRequest) (string, error) {
	if err := validator.Struct(ctx, req); err != nil {
		return "", err
	}

	hashed, err := s.hasher.Hash(req.Password)
	if err != nil {
		return "", err
	}

	user := &models.User{
		Username:  req.Username,
		Password:  hashed,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Location:  req.Location,
	}
	if err := s.userRepo.CreateUser(ctx, user); err != nil {
		return "", err
	}

	signupCounter.Add(ctx, 1)
	slog.InfoContext(ctx, "User signed up", "user.username", user.Username)

	return s.issuer.Issue(user)
}

// Login checks the credentials and returns a JWT on success.
func (s *userService) Login(ctx context.Context, req *models.LoginRequest) (string, error) {
	user, ok, err := s.Authenticate(ctx, req.Username, req.Password)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", ErrInvalidCredentials
	}
	return s.issuer.Issue(user)
}

// Authenticate returns the user when the password matches. An unknown username and a
// wrong password both report no match without an error.
func (s *userService) Authenticate(ctx context.Context, username, password string) (*models.User, bool, error) {
	user, err := s.userRepo.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, false, nil
		}
		return nil, false, err
	}
	if !s.hasher.Verify(password, user.Password) {
		return nil, false, nil
	}
	return user, true, nil
}

// Logout revokes the token described by claims until it would have expired anyway.
func (s *userService) Logout(ctx context.Context, claims *auth.Claims) error {
	if s.revoker == nil {
		return ErrLogoutUnavailable
	}
	var until time.Time
	if claims.ExpiresAt != nil {
		until = claims.ExpiresAt.Time
	}
	return s.revoker.Revoke(ctx, claims.ID, until)
}

func (s *userService) GetUser(ctx context.Context, username string) (*models.User, error) {
	return s.userRepo.GetUserByUsername(ctx, username)
}

// UpdateUser changes the profile of username. Only the user themself may do so.
func (s *userService) UpdateUser(ctx context.Context, actor, username string, req *models.UpdateUserRequest) (*models.User, error) {
	if actor != username {
		return nil, fmt.Errorf("%w: %s may not edit %s", apperror.ErrForbidden, actor, username)
	}
	if err := validator.Struct(ctx, req); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.Bio != nil {
		user.Bio = *req.Bio
	}
	if req.Location != nil {
		user.Location = *req.Location
	}

	if err := s.userRepo.UpdateUser(ctx, user); err != nil {
		if errors.Is(err, apperror.ErrDuplicate) {
			return nil, fmt.Errorf("%w: %s", apperror.ErrEmailTaken, user.Email)
		}
		return nil, err
	}
	return user, nil
}

// DeleteUser removes username together with their listings and messages.
func (s *userService) DeleteUser(ctx context.Context, username string) error {
	if err := s.userRepo.DeleteUser(ctx, username); err != nil {
		return err
	}
	slog.InfoContext(ctx, "User deleted", "user.username", username)
	return nil
}
