package service

import (
	"context"
	"testing"
	"time"

	"ctchen222/ShareBnB/internal/api/models"
	"ctchen222/ShareBnB/internal/api/repository"
	"ctchen222/ShareBnB/internal/auth"
	"ctchen222/ShareBnB/internal/db"
	"ctchen222/ShareBnB/internal/storage/mocks"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"
)

type fixture struct {
	users    UserService
	listings ListingService
	messages MessageService
	store    *mocks.MockObjectStore
	issuer   *auth.Issuer
	hasher   *auth.PasswordHasher
	userRepo repository.UserRepository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()

	conn, dialect, err := db.Connect(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	require.NoError(t, db.Migrate(ctx, conn, dialect))

	ctrl := gomock.NewController(t)
	store := mocks.NewMockObjectStore(ctrl)

	userRepo := repository.NewUserRepository(conn)
	listingRepo := repository.NewListingRepository(conn, dialect)
	messageRepo := repository.NewMessageRepository(conn)

	hasher := auth.NewPasswordHasher(bcrypt.MinCost)
	issuer := auth.NewIssuer("test-secret", time.Hour)

	return &fixture{
		users:    NewUserService(userRepo, hasher, issuer, nil),
		listings: NewListingService(listingRepo, userRepo, store),
		messages: NewMessageService(messageRepo, userRepo, listingRepo),
		store:    store,
		issuer:   issuer,
		hasher:   hasher,
		userRepo: userRepo,
	}
}

func signupReq(username string) *models.SignupRequest {
	return &models.SignupRequest{
		Username:  username,
		Password:  "secret",
		Email:     username + "@example.com",
		FirstName: "Test",
		LastName:  "User",
		Location:  "Chicago IL",
	}
}

func (f *fixture) signup(t *testing.T, username string) {
	t.Helper()
	_, err := f.users.Signup(context.Background(), signupReq(username))
	require.NoError(t, err)
}

func (f *fixture) listing(t *testing.T, creator, location string) *models.Listing {
	t.Helper()
	l, err := f.listings.CreateListing(context.Background(), &models.NewListing{
		Name:      "Studio",
		Address:   "1 Main st",
		Location:  location,
		CreatedBy: creator,
	})
	require.NoError(t, err)
	return l
}
