package service

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/sidyfoba/solarcom-console/internal/pkg/errors"
	"github.com/sidyfoba/solarcom-console/internal/store"
)

// UserStore is the persistence surface UserService needs.
type UserStore interface {
	CreateUser(ctx context.Context, u *store.User) error
	GetUserByUsername(ctx context.Context, username string) (*store.User, error)
}

// TokenIssuer mints access tokens after a successful login. Implemented
// by the JWT middleware so the service stays transport-agnostic.
type TokenIssuer interface {
	Issue(userID, username string, roles []string) (token string, expiresAt time.Time, err error)
}

// RegisterInput is the add-user payload.
type RegisterInput struct {
	Username        string   `json:"username"`
	Email           string   `json:"email"`
	Password        string   `json:"password"`
	ConfirmPassword string   `json:"confirmPassword"`
	Roles           []string `json:"roles,omitempty"`
}

// LoginResult is what a successful check-login returns.
type LoginResult struct {
	User      *store.User `json:"user"`
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expiresAt"`
}

// UserService handles account registration and login.
type UserService struct {
	store      UserStore
	tokens     TokenIssuer
	bcryptCost int
}

// NewUserService creates a new UserService.
func NewUserService(store UserStore, tokens TokenIssuer, bcryptCost int) *UserService {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &UserService{store: store, tokens: tokens, bcryptCost: bcryptCost}
}

// Register creates a new account. The password pair is checked before
// anything touches the database.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*store.User, error) {
	username := strings.TrimSpace(in.Username)
	if username == "" {
		return nil, apperrors.BadRequest(apperrors.CodeInvalidRequest, "username is required")
	}
	if in.Password == "" {
		return nil, apperrors.BadRequest(apperrors.CodeInvalidRequest, "password is required")
	}
	if in.Password != in.ConfirmPassword {
		return nil, apperrors.BadRequest(apperrors.CodePasswordMismatch, "passwords do not match")
	}
	email := strings.TrimSpace(in.Email)
	if email != "" {
		if _, err := mail.ParseAddress(email); err != nil {
			return nil, apperrors.BadRequest(apperrors.CodeValidationFailed, "malformed email address").
				WithFieldErrors([]apperrors.FieldError{{
					Field:   "email",
					Code:    "MALFORMED_EMAIL",
					Message: "not a valid email address",
				}})
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.bcryptCost)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeValidationFailed, "hash password", 500)
	}

	roles := in.Roles
	if len(roles) == 0 {
		roles = []string{"operator"}
	}

	u := &store.User{
		ID:           newUserID(),
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Roles:        roles,
	}
	if err := s.store.CreateUser(ctx, u); err != nil {
		if errors.Is(err, apperrors.ErrAlreadyExists) {
			return nil, apperrors.Conflict(apperrors.CodeUserExists, "username or email already taken")
		}
		return nil, err
	}
	return u, nil
}

// CheckLogin verifies credentials and mints a token. Unknown user and
// wrong password are indistinguishable to the caller.
func (s *UserService) CheckLogin(ctx context.Context, username, password string) (*LoginResult, error) {
	u, err := s.store.GetUserByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrLoginFailed()
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, apperrors.ErrLoginFailed()
	}

	token, expiresAt, err := s.tokens.Issue(u.ID, u.Username, u.Roles)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeTokenInvalid, "issue token", 500)
	}

	return &LoginResult{User: u, Token: token, ExpiresAt: expiresAt}, nil
}

func newUserID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}
