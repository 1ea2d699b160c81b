package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/jonboulle/clockwork"
	"github.com/riskibarqy/teamtrack/internal/domain/profile"
	"github.com/riskibarqy/teamtrack/internal/domain/user"
	idgen "github.com/riskibarqy/teamtrack/internal/platform/id"
	"github.com/riskibarqy/teamtrack/internal/platform/logging"
)

const minPasswordLength = 6

var emailValidator = validator.New()

// PasswordHasher hashes and checks login secrets.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

// TokenIssuer mints access tokens for a principal.
type TokenIssuer interface {
	Issue(principal user.Principal) (string, time.Time, error)
}

type SignUpInput struct {
	Email    string
	Password string
	FullName string
	Role     string
}

// Session is the result of a successful sign-in.
type Session struct {
	AccessToken string
	ExpiresAt   time.Time
	Profile     profile.Profile
}

type AuthService struct {
	credentials profile.CredentialRepository
	profiles    profile.Repository
	hasher      PasswordHasher
	tokens      TokenIssuer
	idGen       idgen.Generator
	logger      *logging.Logger
	clock       clockwork.Clock
}

func NewAuthService(
	credentials profile.CredentialRepository,
	profiles profile.Repository,
	hasher PasswordHasher,
	tokens TokenIssuer,
	idGen idgen.Generator,
	logger *logging.Logger,
	clock clockwork.Clock,
) *AuthService {
	if logger == nil {
		logger = logging.Default()
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	return &AuthService{
		credentials: credentials,
		profiles:    profiles,
		hasher:      hasher,
		tokens:      tokens,
		idGen:       idGen,
		logger:      logger,
		clock:       clock,
	}
}

func (s *AuthService) SignUp(ctx context.Context, input SignUpInput) (Session, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AuthService.SignUp")
	defer span.End()

	email, err := normalizeEmail(input.Email)
	if err != nil {
		return Session{}, err
	}
	if len(input.Password) < minPasswordLength {
		return Session{}, fmt.Errorf("%w: password must be at least %d characters", ErrInvalidInput, minPasswordLength)
	}
	role, err := profile.ParseRole(input.Role)
	if err != nil {
		return Session{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	_, exists, err := s.credentials.GetByEmail(ctx, email)
	if err != nil {
		return Session{}, fmt.Errorf("get credential by email: %w", err)
	}
	if exists {
		return Session{}, fmt.Errorf("%w: email is already registered", ErrConflict)
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return Session{}, fmt.Errorf("hash password: %w", err)
	}
	userID, err := s.idGen.NewID()
	if err != nil {
		return Session{}, fmt.Errorf("generate user id: %w", err)
	}

	now := s.clock.Now().UTC()
	if err := s.credentials.Create(ctx, profile.Credential{
		UserID:       userID,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    now,
	}); err != nil {
		if errors.Is(err, profile.ErrEmailTaken) {
			return Session{}, fmt.Errorf("%w: email is already registered", ErrConflict)
		}
		return Session{}, fmt.Errorf("create credential: %w", err)
	}

	created := profile.Profile{
		ID:        userID,
		Email:     email,
		FullName:  strings.TrimSpace(input.FullName),
		Role:      role,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.profiles.Create(ctx, created); err != nil {
		if delErr := s.credentials.Delete(ctx, userID); delErr != nil {
			s.logger.ErrorContext(ctx, "roll back credential failed", "user_id", userID, "error", delErr)
		}
		return Session{}, fmt.Errorf("create profile: %w", err)
	}

	s.logger.InfoContext(ctx, "user signed up", "user_id", userID, "role", role)
	return s.issue(created)
}

func (s *AuthService) SignIn(ctx context.Context, email, password string) (Session, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AuthService.SignIn")
	defer span.End()

	invalid := fmt.Errorf("%w: Invalid email or password", ErrUnauthorized)

	normalized, err := normalizeEmail(email)
	if err != nil || password == "" {
		return Session{}, invalid
	}

	cred, exists, err := s.credentials.GetByEmail(ctx, normalized)
	if err != nil {
		return Session{}, fmt.Errorf("get credential by email: %w", err)
	}
	if !exists {
		return Session{}, invalid
	}
	if err := s.hasher.Compare(cred.PasswordHash, password); err != nil {
		s.logger.WarnContext(ctx, "sign in rejected", "user_id", cred.UserID)
		return Session{}, invalid
	}

	item, exists, err := s.profiles.GetByID(ctx, cred.UserID)
	if err != nil {
		return Session{}, fmt.Errorf("get profile: %w", err)
	}
	if !exists {
		return Session{}, fmt.Errorf("%w: profile missing for user=%s", ErrNotFound, cred.UserID)
	}

	return s.issue(item)
}

func (s *AuthService) issue(item profile.Profile) (Session, error) {
	token, expiresAt, err := s.tokens.Issue(user.Principal{
		UserID: item.ID,
		Email:  item.Email,
		Role:   string(item.Role),
	})
	if err != nil {
		return Session{}, fmt.Errorf("issue access token: %w", err)
	}

	return Session{AccessToken: token, ExpiresAt: expiresAt, Profile: item}, nil
}

func normalizeEmail(v string) (string, error) {
	email := strings.ToLower(strings.TrimSpace(v))
	if email == "" {
		return "", fmt.Errorf("%w: email is required", ErrInvalidInput)
	}
	if err := emailValidator.Var(email, "email"); err != nil {
		return "", fmt.Errorf("%w: invalid email %q", ErrInvalidInput, v)
	}
	return email, nil
}
