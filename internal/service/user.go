// Package service provides business logic for the application.
package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"github.com/giftwell/giftwell/internal/auth"
	"github.com/giftwell/giftwell/internal/model"
	"github.com/giftwell/giftwell/internal/repository"
)

// Service errors for registration and login.
var (
	ErrEmailRequired    = errors.New("email is required")
	ErrEmailInvalid     = errors.New("email is not a valid address")
	ErrUsernameRequired = errors.New("username is required")
	ErrUsernameInvalid  = errors.New("username contains invalid characters")
	ErrPasswordRequired = errors.New("password is required")
	ErrEmailTaken       = errors.New("email already registered")
	ErrUsernameTaken    = errors.New("username already registered")

	// ErrInvalidCredentials covers both unknown usernames and wrong
	// passwords so login failures are indistinguishable.
	ErrInvalidCredentials = errors.New("incorrect username or password")
)

// Username validation: 3-50 chars, alphanumeric plus underscore/hyphen.
var usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]{3,50}$`)

// Loose email shape check; the mailbox is never verified.
var emailRegex = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// UserStore is the persistence surface the user service depends on.
type UserStore interface {
	CreateUser(ctx context.Context, email, username, hashedPassword string) (*model.User, error)
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
}

// UserService handles registration and credential checks.
type UserService struct {
	store UserStore
}

// NewUserService creates a new UserService.
func NewUserService(store UserStore) *UserService {
	return &UserService{store: store}
}

// RegisterInput defines input for registering a user.
type RegisterInput struct {
	Email    string
	Username string
	Password string
}

// Register validates the input, hashes the password and stores the new
// user. The plaintext password is never persisted.
func (s *UserService) Register(ctx context.Context, input RegisterInput) (*model.User, error) {
	if input.Email == "" {
		return nil, ErrEmailRequired
	}
	if !emailRegex.MatchString(input.Email) {
		return nil, ErrEmailInvalid
	}
	if input.Username == "" {
		return nil, ErrUsernameRequired
	}
	if !usernameRegex.MatchString(input.Username) {
		return nil, ErrUsernameInvalid
	}
	if input.Password == "" {
		return nil, ErrPasswordRequired
	}

	hashed, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.store.CreateUser(ctx, input.Email, input.Username, hashed)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrEmailTaken):
			return nil, ErrEmailTaken
		case errors.Is(err, repository.ErrUsernameTaken):
			return nil, ErrUsernameTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	return user, nil
}

// Authenticate verifies a username/password pair and returns the user.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (*model.User, error) {
	if username == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := s.store.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	match, err := auth.VerifyPassword(password, user.HashedPassword)
	if err != nil || !match {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}
