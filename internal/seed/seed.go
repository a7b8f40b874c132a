// Package seed fills an empty datastore with demo users, listings and a message.
package seed

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"ctchen222/ShareBnB/internal/api/models"
	"ctchen222/ShareBnB/internal/api/repository"

	"github.com/shopspring/decimal"
)

// DemoPassword is the plaintext password of every seeded user.
const DemoPassword = "password"

const imageBase = "https://sharebnb-dnd.s3.us-east-2.amazonaws.com/"

type Hasher interface {
	Hash(plaintext string) (string, error)
}

type Seeder struct {
	users    repository.UserRepository
	listings repository.ListingRepository
	messages repository.MessageRepository
	hasher   Hasher
	now      func() time.Time
}

func NewSeeder(users repository.UserRepository, listings repository.ListingRepository, messages repository.MessageRepository, hasher Hasher) *Seeder {
	return &Seeder{
		users:    users,
		listings: listings,
		messages: messages,
		hasher:   hasher,
		now:      time.Now,
	}
}

func demoUsers() []models.User {
	return []models.User{
		{
			Username:  "test-user",
			Email:     "test@gmail.com",
			FirstName: "Test",
			LastName:  "User",
			Bio:       "This is the test bio of a user",
			Location:  "Chicago, IL",
			IsAdmin:   true,
		},
		{
			Username:  "test-user-2",
			Email:     "testNew@gmail.com",
			FirstName: "Test",
			LastName:  "User",
			Bio:       "This is the test 2 bio of a user",
			Location:  "Boston, MA",
		},
	}
}

func demoListings() []models.Listing {
	listing := func(name, address, image string, price int64, description, location, created string) models.Listing {
		return models.Listing{
			Name:        name,
			Address:     address,
			Image:       imageBase + image,
			Price:       decimal.NewFromInt(price),
			Description: description,
			Location:    location,
			Created:     created,
		}
	}
	return []models.Listing{
		listing("Designer studio on Michigan Ave", "test123 st", "apartment1.jpg", 100, "Cozy apartment that features 2 bedrooms, living room, and 1 bathroom", "Chicago IL", "test-user"),
		listing("Designer studio on Michigan Ave", "test123 st", "apartment2.jpg", 200, "Cozy apartment that features 1 bedroom, living room, and 1 bathroom", "Chicago IL", "test-user"),
		listing("CHICAGO O’HARE HARLEM BLUE LINE", "test123 st", "house1.jpg", 200, "Cozy house that features 3 bedrooms, living room, and 3 bathrooms", "Chicago IL", "test-user"),
		listing("Fenway location", "test234 st", "house3.jpg", 200, "Cozy house that features 3 bedrooms, living room, and 3 bathrooms", "Boston MA", "test-user"),
		listing("Chicago Southside location", "test123 st", "house4.jpg", 200, "Cozy house that features 3 bedrooms, living room, and 3 bathrooms", "Chicago IL", "test-user"),
		listing("Chicago Northside location", "test123 st", "house5.jpg", 200, "Cozy house that features 2 bedrooms, living room, and 1 bathroom", "Chicago IL", "test-user"),
		listing("Bay Area location", "test123 st", "house6.jpg", 200, "Cozy house that features 2 bedrooms, living room, and 2 bathrooms", "San Francisco CA", "test-user"),
		listing("Bay Area location", "test123 st", "house2.jpg", 200, "Cozy house that features 3 bedrooms, living room, and 3 bathrooms", "San Francisco CA", "test-user-2"),
	}
}

// Run inserts the demo data. It fails with apperror.ErrDuplicate when the users already exist.
func (s *Seeder) Run(ctx context.Context) error {
	hashed, err := s.hasher.Hash(DemoPassword)
	if err != nil {
		return err
	}

	for _, u := range demoUsers() {
		u.Password = hashed
		if err := s.users.CreateUser(ctx, &u); err != nil {
			return fmt.Errorf("seed user %s: %w", u.Username, err)
		}
	}

	var last models.Listing
	for _, l := range demoListings() {
		if err := s.listings.CreateListing(ctx, &l); err != nil {
			return fmt.Errorf("seed listing %q: %w", l.Name, err)
		}
		last = l
	}

	welcome := &models.Message{
		Text:      "Hello new user!",
		TimeSent:  s.now().UTC().Truncate(time.Microsecond),
		ToUser:    "test-user-2",
		FromUser:  "test-user",
		ListingID: last.ID,
	}
	if err := s.messages.CreateMessage(ctx, welcome); err != nil {
		return fmt.Errorf("seed message: %w", err)
	}

	slog.InfoContext(ctx, "Seeded datastore", "seed.users", len(demoUsers()), "seed.listings", len(demoListings()))
	return nil
}
