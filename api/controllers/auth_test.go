package controllers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/duracem/nameplate-backend/api/middleware"
	"github.com/duracem/nameplate-backend/internal/auth"
	"github.com/duracem/nameplate-backend/internal/users"
	"github.com/duracem/nameplate-backend/pkg/config"
	"github.com/duracem/nameplate-backend/pkg/logger"
)

type testAuthService struct {
	loginFn func(ctx context.Context, req auth.LoginRequest) (*auth.LoginResponse, error)
	meFn    func(ctx context.Context, userID uuid.UUID) (*users.UserDTO, error)
}

func (s *testAuthService) Login(ctx context.Context, req auth.LoginRequest) (*auth.LoginResponse, error) {
	if s.loginFn != nil {
		return s.loginFn(ctx, req)
	}
	return nil, nil
}

func (s *testAuthService) Me(ctx context.Context, userID uuid.UUID) (*users.UserDTO, error) {
	if s.meFn != nil {
		return s.meFn(ctx, userID)
	}
	return nil, nil
}

type testRegisterService struct {
	registerFn func(ctx context.Context, req auth.RegisterRequest) (*auth.RegisterResponse, error)
}

func (s *testRegisterService) Register(ctx context.Context, req auth.RegisterRequest) (*auth.RegisterResponse, error) {
	if s.registerFn != nil {
		return s.registerFn(ctx, req)
	}
	return nil, nil
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
}

func testAuthConfig(env string) *config.Config {
	cfg := &config.Config{}
	cfg.App.Env = env
	cfg.JWT = config.JWTConfig{
		Secret:            "0123456789abcdef0123456789abcdef",
		Issuer:            "nameplate-test",
		ExpirationMinutes: 60,
		CookieName:        "token",
	}
	return cfg
}

func TestAuthRegisterCreated(t *testing.T) {
	svc := &testRegisterService{
		registerFn: func(ctx context.Context, req auth.RegisterRequest) (*auth.RegisterResponse, error) {
			if req.Email != "maria@post.example" {
				t.Fatalf("unexpected email %q", req.Email)
			}
			return &auth.RegisterResponse{User: &users.UserDTO{OfficerNumber: "OFF11"}}, nil
		},
	}

	body := `{"officerName":"Maria","email":"maria@post.example","password":"sup3rsecret","mobileNumber":"9876543210","rmo":"RMO1"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	AuthRegister(svc, testLogger())(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("unexpected status %d: %s", resp.Code, resp.Body.String())
	}
	var envelope struct {
		Data auth.RegisterResponse `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.User.OfficerNumber != "OFF11" {
		t.Fatalf("unexpected officer number %q", envelope.Data.User.OfficerNumber)
	}
}

func TestAuthRegisterRejectsBadBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(`{"email":"not-an-email"}`))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	AuthRegister(&testRegisterService{}, testLogger())(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("unexpected status %d", resp.Code)
	}
}

func TestAuthLoginSetsSessionCookie(t *testing.T) {
	svc := &testAuthService{
		loginFn: func(ctx context.Context, req auth.LoginRequest) (*auth.LoginResponse, error) {
			return &auth.LoginResponse{Token: "signed-token", User: &users.UserDTO{Email: req.Email}}, nil
		},
	}

	body := `{"email":"maria@post.example","password":"sup3rsecret"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	AuthLogin(svc, testAuthConfig("production"), testLogger())(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status %d: %s", resp.Code, resp.Body.String())
	}

	cookies := resp.Result().Cookies()
	var session *http.Cookie
	for _, c := range cookies {
		if c.Name == "token" {
			session = c
		}
	}
	if session == nil {
		t.Fatal("expected session cookie")
	}
	if session.Value != "signed-token" {
		t.Fatalf("unexpected cookie value %q", session.Value)
	}
	if !session.HttpOnly {
		t.Fatal("expected HttpOnly cookie")
	}
	if session.SameSite != http.SameSiteStrictMode {
		t.Fatalf("unexpected SameSite %v", session.SameSite)
	}
	if !session.Secure {
		t.Fatal("expected Secure cookie outside dev")
	}
}

func TestAuthLoginCookieNotSecureInDev(t *testing.T) {
	svc := &testAuthService{
		loginFn: func(ctx context.Context, req auth.LoginRequest) (*auth.LoginResponse, error) {
			return &auth.LoginResponse{Token: "signed-token", User: &users.UserDTO{}}, nil
		},
	}

	body := `{"email":"maria@post.example","password":"sup3rsecret"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	AuthLogin(svc, testAuthConfig(config.AppEnvDev), testLogger())(resp, req)

	cookies := resp.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("expected one cookie, got %d", len(cookies))
	}
	if cookies[0].Secure {
		t.Fatal("dev cookie must not be Secure")
	}
}

func TestAuthMeRequiresSession(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	resp := httptest.NewRecorder()

	AuthMe(&testAuthService{}, testLogger())(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("unexpected status %d", resp.Code)
	}
}

func TestAuthMeReturnsProfile(t *testing.T) {
	userID := uuid.New()
	svc := &testAuthService{
		meFn: func(ctx context.Context, id uuid.UUID) (*users.UserDTO, error) {
			if id != userID {
				t.Fatalf("unexpected user id %s", id)
			}
			return &users.UserDTO{OfficerName: "Maria"}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req = req.WithContext(middleware.WithUserID(req.Context(), userID.String()))
	resp := httptest.NewRecorder()

	AuthMe(svc, testLogger())(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status %d: %s", resp.Code, resp.Body.String())
	}
	var envelope struct {
		Data users.UserDTO `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.OfficerName != "Maria" {
		t.Fatalf("unexpected officer name %q", envelope.Data.OfficerName)
	}
}

func TestAuthLogoutExpiresCookie(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	resp := httptest.NewRecorder()

	AuthLogout(testAuthConfig("production"), testLogger())(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", resp.Code)
	}
	cookies := resp.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("expected one cookie, got %d", len(cookies))
	}
	if cookies[0].MaxAge != -1 {
		t.Fatalf("expected expired cookie, got MaxAge %d", cookies[0].MaxAge)
	}
	if cookies[0].Value != "" {
		t.Fatalf("expected empty cookie value, got %q", cookies[0].Value)
	}
}
