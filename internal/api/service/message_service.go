package service

import (
	"context"
	"ctchen222/ShareBnB/internal/api/apperror"
	"ctchen222/ShareBnB/internal/api/models"
	"ctchen222/ShareBnB/internal/api/repository"
	"ctchen222/ShareBnB/internal/validator"
	"fmt"
	"log/slog"
	"time"
)

// ErrSelfMessage rejects a message whose sender and recipient are the same user.
var ErrSelfMessage = fmt.Errorf("%w: cannot message yourself", apperror.ErrRejected)

// MessageService defines the interface for messaging business logic.
type MessageService interface {
	SendMessage(ctx context.Context, from string, req *models.SendMessageRequest) (*models.Message, error)
	Inbox(ctx context.Context, username string) ([]models.Message, error)
	DeleteMessage(ctx context.Context, id int64) error
}

type messageService struct {
	messageRepo repository.MessageRepository
	userRepo    repository.UserRepository
	listingRepo repository.ListingRepository
	now         func() time.Time
}

// NewMessageService creates a new MessageService.
func NewMessageService(messageRepo repository.MessageRepository, userRepo repository.UserRepository, listingRepo repository.ListingRepository) MessageService {
	return &messageService{
		messageRepo: messageRepo,
		userRepo:    userRepo,
		listingRepo: listingRepo,
		now:         time.Now,
	}
}

// SendMessage stores a message from the current user about a listing.
// The recipient and the listing must exist (apperror.ErrNotFound); writing to
// yourself is rejected with ErrSelfMessage and stores nothing.
func (s *messageService) SendMessage(ctx context.Context, from string, req *models.SendMessageRequest) (*models.Message, error) {
	if err := validator.Struct(ctx, req); err != nil {
		return nil, err
	}
	if _, err := s.userRepo.GetUserByUsername(ctx, req.ToUser); err != nil {
		return nil, err
	}
	if _, err := s.listingRepo.GetListing(ctx, req.ListingID); err != nil {
		return nil, err
	}
	if req.ToUser == from {
		return nil, ErrSelfMessage
	}

	message := &models.Message{
		Text:      req.Text,
		TimeSent:  s.now().UTC().Truncate(time.Microsecond),
		ToUser:    req.ToUser,
		FromUser:  from,
		ListingID: req.ListingID,
	}
	if err := s.messageRepo.CreateMessage(ctx, message); err != nil {
		return nil, err
	}

	messageCounter.Add(ctx, 1)
	slog.InfoContext(ctx, "Message sent", "message.id", message.ID, "message.from_user", from, "message.to_user", req.ToUser)
	return message, nil
}

// Inbox returns the messages addressed to username.
func (s *messageService) Inbox(ctx context.Context, username string) ([]models.Message, error) {
	return s.messageRepo.Inbox(ctx, username)
}

func (s *messageService) DeleteMessage(ctx context.Context, id int64) error {
	return s.messageRepo.DeleteMessage(ctx, id)
}
