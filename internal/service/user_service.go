package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/fintrack/backend/internal/apperror"
	"github.com/fintrack/backend/internal/model"
	"github.com/fintrack/backend/internal/repository"
)

var errInvalidCredentials = &apperror.AppError{
	Err:        apperror.ErrInvalidCredentials,
	Message:    "invalid email or password",
	StatusCode: http.StatusUnauthorized,
}

// UserStore is the account storage used by UserService.
// Implementations must be safe for concurrent use.
type UserStore interface {
	Create(ctx context.Context, user *model.User) error
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	UpdateName(ctx context.Context, user *model.User) error
}

// UserService handles registration, password login and session tokens.
type UserService struct {
	users  UserStore
	secret []byte
	ttl    time.Duration
	cost   int
	now    Clock
}

// NewUserService creates a UserService that signs HS256 tokens with secret,
// valid for ttl.
func NewUserService(users UserStore, secret string, ttl time.Duration) *UserService {
	return &UserService{
		users:  users,
		secret: []byte(secret),
		ttl:    ttl,
		cost:   bcrypt.DefaultCost,
		now:    time.Now,
	}
}

type RegisterInput struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Name     string `json:"name" validate:"required,max=100"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AuthResponse struct {
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expiresAt"`
	User      *model.User `json:"user"`
}

// Register creates an account and signs the user in.
func (s *UserService) Register(ctx context.Context, input RegisterInput) (*AuthResponse, error) {
	input.Email = normalizeEmail(input.Email)
	input.Name = strings.TrimSpace(input.Name)
	if err := validateInput(input); err != nil {
		return nil, err
	}

	exists, err := s.users.EmailExists(ctx, input.Email)
	if err != nil {
		return nil, fmt.Errorf("checking email existence: %w", err)
	}
	if exists {
		return nil, apperror.Conflict("email already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.cost)
	if err != nil {
		return nil, apperror.Internal(fmt.Errorf("hashing password: %w", err))
	}

	user := &model.User{
		Email:        input.Email,
		PasswordHash: string(hash),
		Name:         input.Name,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return nil, apperror.Conflict("email already registered")
		}
		return nil, fmt.Errorf("creating user: %w", err)
	}

	return s.session(user)
}

// Login checks the password and returns a fresh token. Unknown emails and
// wrong passwords fail the same way.
func (s *UserService) Login(ctx context.Context, input LoginInput) (*AuthResponse, error) {
	input.Email = normalizeEmail(input.Email)
	if err := validateInput(input); err != nil {
		return nil, err
	}

	user, err := s.users.GetByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, errInvalidCredentials
		}
		return nil, fmt.Errorf("fetching user by email: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, errInvalidCredentials
	}

	return s.session(user)
}

func (s *UserService) Me(ctx context.Context, id uuid.UUID) (*model.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, apperror.NotFound("user")
		}
		return nil, fmt.Errorf("getting user %s: %w", id, err)
	}
	return user, nil
}

type UpdateProfileInput struct {
	Name string `json:"name" validate:"required,max=100"`
}

// UpdateProfile renames the user.
func (s *UserService) UpdateProfile(ctx context.Context, id uuid.UUID, input UpdateProfileInput) (*model.User, error) {
	input.Name = strings.TrimSpace(input.Name)
	if err := validateInput(input); err != nil {
		return nil, err
	}

	user, err := s.Me(ctx, id)
	if err != nil {
		return nil, err
	}
	user.Name = input.Name
	if err := s.users.UpdateName(ctx, user); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, apperror.NotFound("user")
		}
		return nil, fmt.Errorf("updating user %s: %w", id, err)
	}
	return user, nil
}

// ValidateToken parses a session token and returns the user it was issued to.
func (s *UserService) ValidateToken(token string) (uuid.UUID, error) {
	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !parsed.Valid {
		return uuid.Nil, apperror.Unauthorized("invalid or expired token")
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, apperror.Unauthorized("invalid user id in token")
	}
	return userID, nil
}

func (s *UserService) session(user *model.User) (*AuthResponse, error) {
	now := s.now()
	expires := now.Add(s.ttl)
	claims := jwt.RegisteredClaims{
		Subject:   user.ID.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expires),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, apperror.Internal(fmt.Errorf("signing token: %w", err))
	}
	return &AuthResponse{Token: token, ExpiresAt: expires.UTC(), User: user}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
