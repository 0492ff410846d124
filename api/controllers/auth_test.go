package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stylehaven/stylehaven-backend/internal/auth"
	"github.com/stylehaven/stylehaven-backend/internal/users"
	pkgerrors "github.com/stylehaven/stylehaven-backend/pkg/errors"
	"github.com/stylehaven/stylehaven-backend/pkg/logger"
)

type stubAuthService struct {
	registerResult *auth.RegisterResponse
	registerErr    error
	otpResult      *auth.OTPRequestResponse
	otpErr         error
	verifyResult   *auth.LoginResponse
	verifyErr      error
	staffResult    *auth.LoginResponse
	staffErr       error

	lastRegister auth.RegisterRequest
	lastVerify   auth.VerifyOTPRequest
}

func (s *stubAuthService) Register(ctx context.Context, req auth.RegisterRequest) (*auth.RegisterResponse, error) {
	s.lastRegister = req
	return s.registerResult, s.registerErr
}

func (s *stubAuthService) RequestOTP(ctx context.Context, req auth.OTPRequest) (*auth.OTPRequestResponse, error) {
	return s.otpResult, s.otpErr
}

func (s *stubAuthService) VerifyOTP(ctx context.Context, req auth.VerifyOTPRequest) (*auth.LoginResponse, error) {
	s.lastVerify = req
	return s.verifyResult, s.verifyErr
}

func (s *stubAuthService) StaffLogin(ctx context.Context, req auth.StaffLoginRequest) (*auth.LoginResponse, error) {
	return s.staffResult, s.staffErr
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "controllers-test"})
}

func TestAuthRegisterReturnsCreatedWithTokenHeader(t *testing.T) {
	svc := &stubAuthService{
		registerResult: &auth.RegisterResponse{
			AccessToken:  "access-token",
			RefreshToken: "refresh-token",
			User:         &users.UserDTO{Email: "ana@example.com", Username: "ana"},
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", strings.NewReader(`{"email":"Ana@Example.com","username":"ana"}`))
	rec := httptest.NewRecorder()
	AuthRegister(svc, testLogger())(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d body %s", rec.Code, rec.Body.String())
	}
	if got := rec.Header().Get("X-SH-Token"); got != "access-token" {
		t.Fatalf("expected token header got %q", got)
	}
	if svc.lastRegister.Email != "Ana@Example.com" {
		t.Fatalf("expected raw email forwarded got %q", svc.lastRegister.Email)
	}
}

func TestAuthRegisterRejectsInvalidBody(t *testing.T) {
	svc := &stubAuthService{}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", strings.NewReader(`{"email":"not-an-email"}`))
	rec := httptest.NewRecorder()
	AuthRegister(svc, testLogger())(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
}

func TestAuthRequestOTPPassesThroughNotFound(t *testing.T) {
	svc := &stubAuthService{
		otpErr: pkgerrors.New(pkgerrors.CodeNotFound, "user not found, please register"),
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/otp/request", strings.NewReader(`{"email":"ghost@example.com"}`))
	rec := httptest.NewRecorder()
	AuthRequestOTP(svc, testLogger())(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "please register") {
		t.Fatalf("expected register hint in body got %s", rec.Body.String())
	}
}

func TestAuthVerifyOTPRequiresFourDigitCode(t *testing.T) {
	svc := &stubAuthService{}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/otp/verify", strings.NewReader(`{"email":"ana@example.com","code":"12"}`))
	rec := httptest.NewRecorder()
	AuthVerifyOTP(svc, testLogger())(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
}

func TestAuthVerifyOTPReturnsTokenPair(t *testing.T) {
	svc := &stubAuthService{
		verifyResult: &auth.LoginResponse{
			AccessToken:  "verified-access",
			RefreshToken: "verified-refresh",
			User:         &users.UserDTO{Email: "ana@example.com"},
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/otp/verify", strings.NewReader(`{"email":"ana@example.com","code":"4321"}`))
	rec := httptest.NewRecorder()
	AuthVerifyOTP(svc, testLogger())(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body %s", rec.Code, rec.Body.String())
	}
	if got := rec.Header().Get("X-SH-Token"); got != "verified-access" {
		t.Fatalf("expected access token header got %q", got)
	}

	var envelope struct {
		Data auth.LoginResponse `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if envelope.Data.RefreshToken != "verified-refresh" {
		t.Fatalf("expected refresh token in body got %q", envelope.Data.RefreshToken)
	}
}

func TestAuthStaffLoginMapsUnauthorized(t *testing.T) {
	svc := &stubAuthService{
		staffErr: pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials"),
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/staff/login", strings.NewReader(`{"email":"boss@example.com","password":"wrong"}`))
	rec := httptest.NewRecorder()
	AuthStaffLogin(svc, testLogger())(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", rec.Code)
	}
}
