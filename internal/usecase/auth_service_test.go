package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/riskibarqy/teamtrack/internal/domain/profile"
	"github.com/riskibarqy/teamtrack/internal/domain/user"
	"github.com/riskibarqy/teamtrack/internal/infrastructure/repository/memory"
	idgen "github.com/riskibarqy/teamtrack/internal/platform/id"
	"github.com/riskibarqy/teamtrack/internal/platform/logging"
)

type plainHasher struct{}

func (plainHasher) Hash(password string) (string, error) {
	return "hashed:" + password, nil
}

func (plainHasher) Compare(hash, password string) error {
	if hash != "hashed:"+password {
		return errors.New("password mismatch")
	}
	return nil
}

type stubTokens struct {
	issued []user.Principal
}

func (s *stubTokens) Issue(principal user.Principal) (string, time.Time, error) {
	s.issued = append(s.issued, principal)
	return fmt.Sprintf("token-%s-%d", principal.UserID, len(s.issued)), testNow.Add(time.Hour), nil
}

type authFixture struct {
	service     *AuthService
	tokens      *stubTokens
	profiles    *memory.ProfileRepository
	credentials *memory.CredentialRepository
}

func newAuthFixture(t *testing.T) authFixture {
	t.Helper()

	fx := authFixture{
		tokens:      &stubTokens{},
		profiles:    seededProfiles(),
		credentials: memory.NewCredentialRepository(),
	}
	fx.service = NewAuthService(
		fx.credentials,
		fx.profiles,
		plainHasher{},
		fx.tokens,
		idgen.NewSequence("user"),
		logging.NewNop(),
		newTestClock(),
	)
	return fx
}

func TestAuthService_SignUpThenSignIn(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	fx := newAuthFixture(t)

	session, err := fx.service.SignUp(ctx, SignUpInput{Email: "  Coach@Example.COM ", Password: "secret1", FullName: " Coach Kim ", Role: "Manager"})
	if err != nil {
		t.Fatalf("sign up: %v", err)
	}
	if session.Profile.ID != "user-1" || session.Profile.Email != "coach@example.com" || session.Profile.Role != profile.RoleManager {
		t.Fatalf("unexpected profile: %+v", session.Profile)
	}
	if session.Profile.FullName != "Coach Kim" {
		t.Fatalf("expected trimmed name, got %q", session.Profile.FullName)
	}
	if !session.ExpiresAt.Equal(testNow.Add(time.Hour)) {
		t.Fatalf("unexpected expiry %s", session.ExpiresAt)
	}

	if !strings.HasPrefix(session.AccessToken, "token-user-1") {
		t.Fatalf("unexpected token %q", session.AccessToken)
	}
	principal := fx.tokens.issued[0]
	if principal.UserID != "user-1" || principal.Role != "manager" || principal.Email != "coach@example.com" {
		t.Fatalf("unexpected principal: %+v", principal)
	}

	cred, exists, err := fx.credentials.GetByEmail(ctx, "coach@example.com")
	if err != nil || !exists {
		t.Fatalf("expected stored credential, exists=%v err=%v", exists, err)
	}
	if cred.PasswordHash != "hashed:secret1" || cred.UserID != "user-1" {
		t.Fatalf("unexpected credential: %+v", cred)
	}

	stored, exists, err := fx.profiles.GetByID(ctx, "user-1")
	if err != nil || !exists {
		t.Fatalf("expected stored profile, exists=%v err=%v", exists, err)
	}
	if stored.Email != "coach@example.com" {
		t.Fatalf("unexpected stored email %q", stored.Email)
	}

	signedIn, err := fx.service.SignIn(ctx, "COACH@example.com", "secret1")
	if err != nil {
		t.Fatalf("sign in: %v", err)
	}
	if signedIn.Profile.ID != "user-1" || signedIn.AccessToken == "" {
		t.Fatalf("unexpected session: %+v", signedIn)
	}
}

func TestAuthService_SignUp_DefaultsToPlayerRole(t *testing.T) {
	t.Parallel()

	fx := newAuthFixture(t)
	session, err := fx.service.SignUp(context.Background(), SignUpInput{Email: "kid@example.com", Password: "secret1"})
	if err != nil {
		t.Fatalf("sign up: %v", err)
	}
	if session.Profile.Role != profile.RolePlayer {
		t.Fatalf("expected player role, got %s", session.Profile.Role)
	}
	if session.Profile.DisplayName() != "kid" {
		t.Fatalf("expected display name from email, got %q", session.Profile.DisplayName())
	}
}

func TestAuthService_SignUp_Rejections(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		input   SignUpInput
		wantErr error
	}{
		{name: "empty email", input: SignUpInput{Password: "secret1"}, wantErr: ErrInvalidInput},
		{name: "malformed email", input: SignUpInput{Email: "not-an-email", Password: "secret1"}, wantErr: ErrInvalidInput},
		{name: "display name email", input: SignUpInput{Email: "Kim <kim@example.com>", Password: "secret1"}, wantErr: ErrInvalidInput},
		{name: "short password", input: SignUpInput{Email: "kim@example.com", Password: "12345"}, wantErr: ErrInvalidInput},
		{name: "unknown role", input: SignUpInput{Email: "kim@example.com", Password: "secret1", Role: "referee"}, wantErr: ErrInvalidInput},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			fx := newAuthFixture(t)
			_, err := fx.service.SignUp(context.Background(), tc.input)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected %v, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestAuthService_SignUp_DuplicateEmailConflicts(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	fx := newAuthFixture(t)

	if _, err := fx.service.SignUp(ctx, SignUpInput{Email: "kim@example.com", Password: "secret1"}); err != nil {
		t.Fatalf("first sign up: %v", err)
	}
	_, err := fx.service.SignUp(ctx, SignUpInput{Email: "KIM@example.com", Password: "another1"})
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}

func TestAuthService_SignIn_InvalidCredentialsAreIndistinguishable(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	fx := newAuthFixture(t)
	if _, err := fx.service.SignUp(ctx, SignUpInput{Email: "kim@example.com", Password: "secret1"}); err != nil {
		t.Fatalf("sign up: %v", err)
	}

	_, wrongPassword := fx.service.SignIn(ctx, "kim@example.com", "secret2")
	_, unknownEmail := fx.service.SignIn(ctx, "nobody@example.com", "secret1")
	_, emptyPassword := fx.service.SignIn(ctx, "kim@example.com", "")

	for _, err := range []error{wrongPassword, unknownEmail, emptyPassword} {
		if !errors.Is(err, ErrUnauthorized) {
			t.Fatalf("expected ErrUnauthorized, got %v", err)
		}
	}
	if wrongPassword.Error() != unknownEmail.Error() {
		t.Fatalf("expected identical messages, got %q and %q", wrongPassword, unknownEmail)
	}
}

type failingProfileCreates struct {
	*memory.ProfileRepository
	failures int
}

func (r *failingProfileCreates) Create(ctx context.Context, item profile.Profile) error {
	if r.failures > 0 {
		r.failures--
		return errors.New("profiles table unavailable")
	}
	return r.ProfileRepository.Create(ctx, item)
}

func TestAuthService_SignUp_ProfileFailureRollsBackCredential(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	profiles := &failingProfileCreates{ProfileRepository: seededProfiles(), failures: 1}
	credentials := memory.NewCredentialRepository()
	service := NewAuthService(credentials, profiles, plainHasher{}, &stubTokens{}, idgen.NewSequence("user"), logging.NewNop(), newTestClock())

	if _, err := service.SignUp(ctx, SignUpInput{Email: "kim@example.com", Password: "secret1"}); err == nil {
		t.Fatalf("expected profile failure to surface")
	}
	if _, exists, _ := credentials.GetByEmail(ctx, "kim@example.com"); exists {
		t.Fatalf("credential must be removed when the profile insert fails")
	}

	session, err := service.SignUp(ctx, SignUpInput{Email: "kim@example.com", Password: "secret1"})
	if err != nil {
		t.Fatalf("retry sign up: %v", err)
	}
	if _, exists, _ := profiles.GetByID(ctx, session.Profile.ID); !exists {
		t.Fatalf("expected profile after retry")
	}
}

type racingCredentials struct {
	*memory.CredentialRepository
}

func (racingCredentials) Create(_ context.Context, item profile.Credential) error {
	return fmt.Errorf("%w: %s", profile.ErrEmailTaken, item.Email)
}

func TestAuthService_SignUp_ConcurrentEmailConflicts(t *testing.T) {
	t.Parallel()

	service := NewAuthService(racingCredentials{memory.NewCredentialRepository()}, seededProfiles(), plainHasher{}, &stubTokens{}, idgen.NewSequence("user"), logging.NewNop(), newTestClock())

	_, err := service.SignUp(context.Background(), SignUpInput{Email: "kim@example.com", Password: "secret1"})
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}
