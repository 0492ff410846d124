package auth

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/stylehaven/stylehaven-backend/internal/users"
	"github.com/stylehaven/stylehaven-backend/pkg/auth/otp"
	"github.com/stylehaven/stylehaven-backend/pkg/config"
	"github.com/stylehaven/stylehaven-backend/pkg/db/models"
	"github.com/stylehaven/stylehaven-backend/pkg/enums"
	pkgerrors "github.com/stylehaven/stylehaven-backend/pkg/errors"
	"github.com/stylehaven/stylehaven-backend/pkg/notify"
	"github.com/stylehaven/stylehaven-backend/pkg/security"
)

type stubUserRepo struct {
	usersByEmail map[string]*models.User
	created      []users.CreateUserDTO
	lastLogin    *time.Time
}

func (s *stubUserRepo) Create(ctx context.Context, dto users.CreateUserDTO) (*models.User, error) {
	s.created = append(s.created, dto)
	user := dto.ToModel()
	user.ID = uuid.New()
	if s.usersByEmail == nil {
		s.usersByEmail = make(map[string]*models.User)
	}
	s.usersByEmail[user.Email] = user
	return user, nil
}

func (s *stubUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	if user, ok := s.usersByEmail[email]; ok {
		return user, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubUserRepo) UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	s.lastLogin = &at
	return nil
}

type stubOTPManager struct {
	issued    []string
	verifyErr error
	code      string
}

func (s *stubOTPManager) Issue(ctx context.Context, identity string) (string, error) {
	s.issued = append(s.issued, identity)
	if s.code == "" {
		s.code = "1234"
	}
	return s.code, nil
}

func (s *stubOTPManager) Verify(ctx context.Context, identity, provided string) error {
	return s.verifyErr
}

type stubSessionManager struct {
	generated int
}

func (s *stubSessionManager) Generate(ctx context.Context, accessID string) (string, error) {
	s.generated++
	return "refresh-token", nil
}

type stubNotifier struct {
	messages []notify.EmailMessage
}

func (s *stubNotifier) Enqueue(ctx context.Context, msg notify.EmailMessage) {
	s.messages = append(s.messages, msg)
}

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "unit-test-secret",
		Issuer:            "stylehaven-test",
		ExpirationMinutes: 15,
	}
}

func newTestService(t *testing.T, repo *stubUserRepo, mgr *stubOTPManager, notifier *stubNotifier) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{
		UserRepo:       repo,
		OTPManager:     mgr,
		SessionManager: &stubSessionManager{},
		Notifier:       notifier,
		JWTConfig:      testJWTConfig(),
		OTPConfig:      config.OTPConfig{TTL: 5 * time.Minute, MaxAttempts: 5},
	})
	if err != nil {
		t.Fatalf("NewService returned error: %v", err)
	}
	return svc
}

func customerUser(email string) *models.User {
	return &models.User{
		ID:       uuid.New(),
		Email:    email,
		Username: "ana",
		IsActive: true,
	}
}

func TestRegister_CreatesUserAndSendsWelcome(t *testing.T) {
	repo := &stubUserRepo{}
	notifier := &stubNotifier{}
	svc := newTestService(t, repo, &stubOTPManager{}, notifier)

	resp, err := svc.Register(context.Background(), RegisterRequest{Email: " Ana@Example.COM ", Username: "ana"})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if resp.User.Email != "ana@example.com" {
		t.Fatalf("expected normalized email, got %q", resp.User.Email)
	}
	if resp.AccessToken == "" || resp.RefreshToken == "" {
		t.Fatal("expected a token pair after registration")
	}
	if len(notifier.messages) != 1 || notifier.messages[0].Kind != enums.NotificationKindWelcome {
		t.Fatalf("expected one welcome email, got %+v", notifier.messages)
	}
	if notifier.messages[0].To != "ana@example.com" {
		t.Fatalf("welcome email addressed to %q", notifier.messages[0].To)
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	email := "ana@example.com"
	repo := &stubUserRepo{usersByEmail: map[string]*models.User{email: customerUser(email)}}
	svc := newTestService(t, repo, &stubOTPManager{}, &stubNotifier{})

	_, err := svc.Register(context.Background(), RegisterRequest{Email: email, Username: "ana"})
	appErr := pkgerrors.As(err)
	if appErr == nil || appErr.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict error, got %v", err)
	}
}

func TestRequestOTP_UnknownUser(t *testing.T) {
	svc := newTestService(t, &stubUserRepo{}, &stubOTPManager{}, &stubNotifier{})

	_, err := svc.RequestOTP(context.Background(), OTPRequest{Email: "ghost@example.com"})
	appErr := pkgerrors.As(err)
	if appErr == nil || appErr.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found error, got %v", err)
	}
	if !strings.Contains(appErr.Message(), "please register") {
		t.Fatalf("expected registration hint, got %q", appErr.Message())
	}
}

func TestRequestOTP_IssuesCodeAndEmailsIt(t *testing.T) {
	email := "ana@example.com"
	repo := &stubUserRepo{usersByEmail: map[string]*models.User{email: customerUser(email)}}
	mgr := &stubOTPManager{code: "4321"}
	notifier := &stubNotifier{}
	svc := newTestService(t, repo, mgr, notifier)

	resp, err := svc.RequestOTP(context.Background(), OTPRequest{Email: email})
	if err != nil {
		t.Fatalf("RequestOTP returned error: %v", err)
	}
	if resp.ExpiresIn != 300 {
		t.Fatalf("expected 300s expiry, got %d", resp.ExpiresIn)
	}
	if len(mgr.issued) != 1 || mgr.issued[0] != email {
		t.Fatalf("expected code issued for %q, got %v", email, mgr.issued)
	}
	if len(notifier.messages) != 1 {
		t.Fatalf("expected one email, got %d", len(notifier.messages))
	}
	msg := notifier.messages[0]
	if msg.Kind != enums.NotificationKindLoginOTP || !strings.Contains(msg.Body, "4321") {
		t.Fatalf("expected login code email containing the code, got %+v", msg)
	}
}

func TestVerifyOTP_Success(t *testing.T) {
	email := "ana@example.com"
	repo := &stubUserRepo{usersByEmail: map[string]*models.User{email: customerUser(email)}}
	svc := newTestService(t, repo, &stubOTPManager{}, &stubNotifier{})

	resp, err := svc.VerifyOTP(context.Background(), VerifyOTPRequest{Email: email, Code: "1234"})
	if err != nil {
		t.Fatalf("VerifyOTP returned error: %v", err)
	}
	if resp.AccessToken == "" || resp.RefreshToken != "refresh-token" {
		t.Fatalf("expected tokens, got %+v", resp)
	}
	if repo.lastLogin == nil {
		t.Fatal("expected last login to be recorded")
	}
}

func TestVerifyOTP_WrongCode(t *testing.T) {
	email := "ana@example.com"
	repo := &stubUserRepo{usersByEmail: map[string]*models.User{email: customerUser(email)}}
	svc := newTestService(t, repo, &stubOTPManager{verifyErr: otp.ErrCodeMismatch}, &stubNotifier{})

	_, err := svc.VerifyOTP(context.Background(), VerifyOTPRequest{Email: email, Code: "0000"})
	appErr := pkgerrors.As(err)
	if appErr == nil || appErr.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized error, got %v", err)
	}
}

func TestVerifyOTP_AttemptsExhausted(t *testing.T) {
	email := "ana@example.com"
	repo := &stubUserRepo{usersByEmail: map[string]*models.User{email: customerUser(email)}}
	svc := newTestService(t, repo, &stubOTPManager{verifyErr: otp.ErrTooManyTries}, &stubNotifier{})

	_, err := svc.VerifyOTP(context.Background(), VerifyOTPRequest{Email: email, Code: "0000"})
	appErr := pkgerrors.As(err)
	if appErr == nil || appErr.Code() != pkgerrors.CodeRateLimit {
		t.Fatalf("expected rate limit error, got %v", err)
	}
}

func TestStaffLogin(t *testing.T) {
	email := "boss@stylehaven.shop"
	hash, err := security.HashPassword("correct horse", config.PasswordConfig{
		ArgonMemoryKB:    32768,
		ArgonTime:        1,
		ArgonParallelism: 1,
		ArgonSaltLen:     16,
		ArgonKeyLen:      32,
	})
	if err != nil {
		t.Fatalf("HashPassword returned error: %v", err)
	}
	staff := &models.User{
		ID:           uuid.New(),
		Email:        email,
		Username:     "boss",
		PasswordHash: &hash,
		IsStaff:      true,
		IsActive:     true,
	}
	repo := &stubUserRepo{usersByEmail: map[string]*models.User{email: staff}}
	svc := newTestService(t, repo, &stubOTPManager{}, &stubNotifier{})

	resp, err := svc.StaffLogin(context.Background(), StaffLoginRequest{Email: email, Password: "correct horse"})
	if err != nil {
		t.Fatalf("StaffLogin returned error: %v", err)
	}
	if resp.AccessToken == "" {
		t.Fatal("expected access token")
	}

	_, err = svc.StaffLogin(context.Background(), StaffLoginRequest{Email: email, Password: "wrong"})
	appErr := pkgerrors.As(err)
	if appErr == nil || appErr.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized for bad password, got %v", err)
	}

	customer := customerUser("ana@example.com")
	customer.PasswordHash = &hash
	repo.usersByEmail[customer.Email] = customer
	_, err = svc.StaffLogin(context.Background(), StaffLoginRequest{Email: customer.Email, Password: "correct horse"})
	appErr = pkgerrors.As(err)
	if appErr == nil || appErr.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized for non-staff, got %v", err)
	}
}
