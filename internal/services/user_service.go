package services

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/avenk/careerpath-be/internal/models"
	"github.com/avenk/careerpath-be/internal/storage"
)

// UserServiceProvider defines the interface for user account services.
type UserServiceProvider interface {
	SignUp(ctx context.Context, email, password string) (models.User, error)
	Authenticate(ctx context.Context, email, password string) (models.User, error)
	GetUserByID(ctx context.Context, id int64) (models.User, error)
}

// UserService provides business logic for account management.
type UserService struct {
	store  storage.Store
	events EventServiceProvider
}

// NewUserService creates a new UserService.
func NewUserService(store storage.Store, events EventServiceProvider) *UserService {
	return &UserService{store: store, events: events}
}

// SignUp registers a new account, hashing the password before storage. Email
// comparison is exact and case-sensitive.
func (s *UserService) SignUp(ctx context.Context, email, password string) (models.User, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.store.CreateUser(ctx, email, string(hashedPassword))
	if err != nil {
		return models.User{}, err
	}

	s.events.Record(ctx, &user.ID, "user.signup", "info", "Account created for "+user.Email)

	// Return user without password hash
	user.PasswordHash = ""
	return user, nil
}

// Authenticate verifies a user's credentials. Unknown emails and wrong
// passwords produce the same error so callers cannot enumerate accounts.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (models.User, error) {
	user, err := s.store.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return models.User{}, models.ErrInvalidCredentials
		}
		return models.User{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return models.User{}, models.ErrInvalidCredentials
	}

	s.events.Record(ctx, &user.ID, "user.signin", "info", "Signed in as "+user.Email)

	// Don't send the password hash to the client
	user.PasswordHash = ""
	return user, nil
}

// GetUserByID retrieves a single user by their ID.
func (s *UserService) GetUserByID(ctx context.Context, id int64) (models.User, error) {
	user, err := s.store.GetUserByID(ctx, id)
	if err != nil {
		return models.User{}, err
	}
	user.PasswordHash = ""
	return user, nil
}
