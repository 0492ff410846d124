package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/stylehaven/stylehaven-backend/internal/users"
	pkgAuth "github.com/stylehaven/stylehaven-backend/pkg/auth"
	"github.com/stylehaven/stylehaven-backend/pkg/auth/otp"
	"github.com/stylehaven/stylehaven-backend/pkg/auth/session"
	"github.com/stylehaven/stylehaven-backend/pkg/config"
	"github.com/stylehaven/stylehaven-backend/pkg/db"
	"github.com/stylehaven/stylehaven-backend/pkg/db/models"
	"github.com/stylehaven/stylehaven-backend/pkg/enums"
	pkgerrors "github.com/stylehaven/stylehaven-backend/pkg/errors"
	"github.com/stylehaven/stylehaven-backend/pkg/notify"
	"github.com/stylehaven/stylehaven-backend/pkg/security"
)

const (
	invalidCredentialsMessage = "invalid credentials"
	userNotFoundMessage       = "user not found, please register"
	invalidCodeMessage        = "invalid or expired code"
)

// Service defines the behavior needed by the auth controller.
type Service interface {
	Register(ctx context.Context, req RegisterRequest) (*RegisterResponse, error)
	RequestOTP(ctx context.Context, req OTPRequest) (*OTPRequestResponse, error)
	VerifyOTP(ctx context.Context, req VerifyOTPRequest) (*LoginResponse, error)
	StaffLogin(ctx context.Context, req StaffLoginRequest) (*LoginResponse, error)
}

type service struct {
	users    userRepository
	otp      otpManager
	session  sessionManager
	notifier notify.Enqueuer
	jwtCfg   config.JWTConfig
	otpCfg   config.OTPConfig
}

type userRepository interface {
	Create(ctx context.Context, dto users.CreateUserDTO) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error
}

type otpManager interface {
	Issue(ctx context.Context, identity string) (string, error)
	Verify(ctx context.Context, identity, provided string) error
}

type sessionManager interface {
	Generate(ctx context.Context, accessID string) (string, error)
}

// ServiceParams bundles the dependencies required to build an auth service.
type ServiceParams struct {
	UserRepo       userRepository
	OTPManager     otpManager
	SessionManager sessionManager
	Notifier       notify.Enqueuer
	JWTConfig      config.JWTConfig
	OTPConfig      config.OTPConfig
}

// NewService constructs an auth service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.UserRepo == nil {
		return nil, fmt.Errorf("user repository is required")
	}
	if params.OTPManager == nil {
		return nil, fmt.Errorf("otp manager is required")
	}
	if params.SessionManager == nil {
		return nil, fmt.Errorf("session manager is required")
	}
	if params.Notifier == nil {
		return nil, fmt.Errorf("notifier is required")
	}
	return &service{
		users:    params.UserRepo,
		otp:      params.OTPManager,
		session:  params.SessionManager,
		notifier: params.Notifier,
		jwtCfg:   params.JWTConfig,
		otpCfg:   params.OTPConfig,
	}, nil
}

func (s *service) Register(ctx context.Context, req RegisterRequest) (*RegisterResponse, error) {
	email := normalizeEmail(req.Email)
	username := strings.TrimSpace(req.Username)
	if email == "" || username == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email and username are required")
	}

	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "an account with this email already exists")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup user")
	}

	user, err := s.users.Create(ctx, users.CreateUserDTO{
		Email:    email,
		Username: username,
	})
	if err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "an account with this email already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create user")
	}

	s.notifier.Enqueue(ctx, notify.EmailMessage{
		Kind:    enums.NotificationKindWelcome,
		To:      user.Email,
		Subject: "Welcome to StyleHaven",
		Body:    fmt.Sprintf("Hi %s, welcome to StyleHaven! Sign in any time with a one-time code sent to this address.", user.Username),
	})

	login, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, err
	}
	return &RegisterResponse{
		AccessToken:  login.AccessToken,
		RefreshToken: login.RefreshToken,
		User:         login.User,
	}, nil
}

func (s *service) RequestOTP(ctx context.Context, req OTPRequest) (*OTPRequestResponse, error) {
	user, err := s.lookupActiveUser(ctx, req.Email)
	if err != nil {
		return nil, err
	}

	code, err := s.otp.Issue(ctx, user.Email)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "issue otp")
	}

	s.notifier.Enqueue(ctx, notify.EmailMessage{
		Kind:    enums.NotificationKindLoginOTP,
		To:      user.Email,
		Subject: "Your StyleHaven sign-in code",
		Body:    fmt.Sprintf("Hi %s, your one-time sign-in code is %s. It expires in %d minutes.", user.Username, code, int(s.otpCfg.TTL.Minutes())),
	})

	return &OTPRequestResponse{
		Email:     user.Email,
		ExpiresIn: int(s.otpCfg.TTL.Seconds()),
	}, nil
}

func (s *service) VerifyOTP(ctx context.Context, req VerifyOTPRequest) (*LoginResponse, error) {
	user, err := s.lookupActiveUser(ctx, req.Email)
	if err != nil {
		return nil, err
	}

	if err := s.otp.Verify(ctx, user.Email, req.Code); err != nil {
		switch {
		case errors.Is(err, otp.ErrTooManyTries):
			return nil, pkgerrors.New(pkgerrors.CodeRateLimit, "too many incorrect codes, request a new one")
		case errors.Is(err, otp.ErrCodeMismatch), errors.Is(err, otp.ErrCodeExpired):
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCodeMessage)
		default:
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "verify otp")
		}
	}

	return s.issueTokens(ctx, user)
}

func (s *service) StaffLogin(ctx context.Context, req StaffLoginRequest) (*LoginResponse, error) {
	email := normalizeEmail(req.Email)
	if email == "" || req.Password == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup user")
	}
	if !user.IsStaff || !user.IsActive || user.PasswordHash == nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
	}

	valid, err := security.VerifyPassword(req.Password, *user.PasswordHash)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verify password")
	}
	if !valid {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
	}

	return s.issueTokens(ctx, user)
}

func (s *service) issueTokens(ctx context.Context, user *models.User) (*LoginResponse, error) {
	now, err := s.recordLogin(ctx, user)
	if err != nil {
		return nil, err
	}

	role := enums.UserRoleCustomer
	if user.IsStaff {
		role = enums.UserRoleStaff
	}

	accessID := session.NewAccessID()
	accessToken, err := pkgAuth.MintAccessToken(s.jwtCfg, now, pkgAuth.AccessTokenPayload{
		UserID: user.ID,
		Email:  user.Email,
		Role:   role,
		JTI:    accessID,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint jwt")
	}
	refreshToken, err := s.session.Generate(ctx, accessID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "store refresh token")
	}

	return &LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         users.FromModel(user),
	}, nil
}

func (s *service) lookupActiveUser(ctx context.Context, email string) (*models.User, error) {
	normalized := normalizeEmail(email)
	if normalized == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email is required")
	}
	user, err := s.users.FindByEmail(ctx, normalized)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, userNotFoundMessage)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup user")
	}
	if !user.IsActive {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
	}
	return user, nil
}

func (s *service) recordLogin(ctx context.Context, user *models.User) (time.Time, error) {
	now := time.Now().UTC()
	if err := s.users.UpdateLastLogin(ctx, user.ID, now); err != nil {
		return time.Time{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update last login")
	}
	user.LastLoginAt = &now
	return now, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
