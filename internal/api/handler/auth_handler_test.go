package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/learnhub/institute-console/internal/api/middleware"
	"github.com/learnhub/institute-console/internal/core/domain"
	"github.com/learnhub/institute-console/internal/core/ports"
)

type stubAuthService struct {
	registerFn func(ctx context.Context, in ports.RegisterInput) (*domain.User, error)
	loginFn    func(ctx context.Context, email, password string) (*ports.LoginResult, error)
	logoutFn   func(ctx context.Context, sessionID string) error
}

func (s *stubAuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	return s.registerFn(ctx, in)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubAuthService) Logout(ctx context.Context, sessionID string) error {
	return s.logoutFn(ctx, sessionID)
}

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return req
}

func TestAuthHandler_Login_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, email, password string) (*ports.LoginResult, error) {
			if email != "staff@example.com" || password != "secret" {
				t.Fatalf("unexpected args: %s %s", email, password)
			}
			return &ports.LoginResult{
				Token:   "token123",
				Session: &domain.Session{ID: "s1", Role: domain.RoleStaff, Identity: "u1", Email: email},
			}, nil
		},
	}
	handler := NewAuthHandler(stub, CookieOptions{Secure: true})

	req := jsonRequest(http.MethodPost, "/auth/login?from=%2Fdashboard%2Ffees", `{"email":"staff@example.com","password":"secret"}`)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["token"] != "token123" {
		t.Fatalf("expected token, got %v", resp["token"])
	}
	if resp["redirect"] != "/dashboard/fees" {
		t.Fatalf("expected redirect to the requested page, got %v", resp["redirect"])
	}
	session, ok := resp["session"].(map[string]any)
	if !ok || session["role"] != "Staff" || session["id"] != "s1" {
		t.Fatalf("unexpected session payload: %+v", resp["session"])
	}

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("expected one cookie, got %d", len(cookies))
	}
	if ck := cookies[0]; ck.Name != domain.SessionKey || ck.Value != "token123" || !ck.HttpOnly || !ck.Secure {
		t.Fatalf("unexpected cookie: %+v", ck)
	}
}

func TestAuthHandler_Login_RedirectFallsBackToRoot(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, email, password string) (*ports.LoginResult, error) {
			return &ports.LoginResult{Token: "t", Session: &domain.Session{ID: "s1", Role: domain.RoleStaff}}, nil
		},
	}
	handler := NewAuthHandler(stub, CookieOptions{})

	for _, from := range []string{"", "%2Fdashboard%2FuserDetails", "%2F%2Fevil.example.com", "https%3A%2F%2Fevil.example.com"} {
		req := jsonRequest(http.MethodPost, "/auth/login?from="+from, `{"email":"staff@example.com","password":"secret"}`)
		rec := httptest.NewRecorder()
		if err := handler.Login(e.NewContext(req, rec)); err != nil {
			t.Fatalf("handler error: %v", err)
		}

		var resp loginResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("invalid json: %v", err)
		}
		if resp.Redirect != "/" {
			t.Fatalf("from=%q: expected redirect to /, got %q", from, resp.Redirect)
		}
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	for _, svcErr := range []error{domain.ErrInvalidCredentials, domain.ErrUserNotFound} {
		e := newTestEcho()
		stub := &stubAuthService{
			loginFn: func(ctx context.Context, email, password string) (*ports.LoginResult, error) {
				return nil, svcErr
			},
		}
		handler := NewAuthHandler(stub, CookieOptions{})

		req := jsonRequest(http.MethodPost, "/auth/login", `{"email":"alice@example.com","password":"bad"}`)
		rec := httptest.NewRecorder()
		_ = handler.Login(e.NewContext(req, rec))

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("%v: expected 401, got %d", svcErr, rec.Code)
		}
		if len(rec.Result().Cookies()) != 0 {
			t.Fatalf("%v: no cookie expected on failure", svcErr)
		}
	}
}

func TestAuthHandler_Login_StoreFailure(t *testing.T) {
	e := newTestEcho()
	boom := errors.New("redis down")
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, email, password string) (*ports.LoginResult, error) {
			return nil, boom
		},
	}
	handler := NewAuthHandler(stub, CookieOptions{})

	req := jsonRequest(http.MethodPost, "/auth/login", `{"email":"alice@example.com","password":"pwd"}`)
	rec := httptest.NewRecorder()

	if err := handler.Login(e.NewContext(req, rec)); !errors.Is(err, boom) {
		t.Fatalf("expected store error to reach the error handler, got %v", err)
	}
}

func TestAuthHandler_Login_InvalidPayload(t *testing.T) {
	cases := map[string]struct {
		body string
		want int
	}{
		"not json":      {"{", http.StatusBadRequest},
		"missing email": {`{"password":"pwd"}`, http.StatusUnprocessableEntity},
		"bad email":     {`{"email":"nope","password":"pwd"}`, http.StatusUnprocessableEntity},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			e := newTestEcho()
			stub := &stubAuthService{
				loginFn: func(ctx context.Context, email, password string) (*ports.LoginResult, error) {
					t.Fatalf("should not be called")
					return nil, nil
				},
			}
			handler := NewAuthHandler(stub, CookieOptions{})

			rec := httptest.NewRecorder()
			_ = handler.Login(e.NewContext(jsonRequest(http.MethodPost, "/auth/login", tc.body), rec))

			if rec.Code != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, rec.Code)
			}
		})
	}
}

func TestAuthHandler_Logout(t *testing.T) {
	e := newTestEcho()
	var gotID string
	stub := &stubAuthService{
		logoutFn: func(ctx context.Context, sessionID string) error {
			gotID = sessionID
			return nil
		},
	}
	handler := NewAuthHandler(stub, CookieOptions{})

	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	middleware.SetSession(c, &domain.Session{ID: "s1", Role: domain.RoleAdmin})

	if err := handler.Logout(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if gotID != "s1" {
		t.Fatalf("expected session s1 to be deleted, got %q", gotID)
	}
	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != domain.SessionKey || cookies[0].MaxAge >= 0 {
		t.Fatalf("expected cleared session cookie, got %+v", cookies)
	}
}

func TestAuthHandler_Logout_Anonymous(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		logoutFn: func(ctx context.Context, sessionID string) error {
			if sessionID != "" {
				t.Fatalf("unexpected session id %q", sessionID)
			}
			return nil
		},
	}
	handler := NewAuthHandler(stub, CookieOptions{})

	rec := httptest.NewRecorder()
	if err := handler.Logout(e.NewContext(httptest.NewRequest(http.MethodPost, "/auth/logout", nil), rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
}

func TestAuthHandler_LoginPage(t *testing.T) {
	handler := NewAuthHandler(&stubAuthService{}, CookieOptions{})

	t.Run("anonymous", func(t *testing.T) {
		e := newTestEcho()
		rec := httptest.NewRecorder()
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/login?from=%2Fdashboard%2Ffees", nil), rec)

		if err := handler.LoginPage(c); err != nil {
			t.Fatalf("handler error: %v", err)
		}
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		var resp loginPageResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("invalid json: %v", err)
		}
		if resp.Status != "login_required" || resp.From != "/dashboard/fees" {
			t.Fatalf("unexpected payload: %+v", resp)
		}
	})

	t.Run("authenticated", func(t *testing.T) {
		e := newTestEcho()
		rec := httptest.NewRecorder()
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/login", nil), rec)
		middleware.SetSession(c, &domain.Session{ID: "s1", Role: domain.RoleAdmin})

		if err := handler.LoginPage(c); err != nil {
			t.Fatalf("handler error: %v", err)
		}
		if rec.Code != http.StatusFound || rec.Header().Get(echo.HeaderLocation) != "/" {
			t.Fatalf("expected 302 to /, got %d %q", rec.Code, rec.Header().Get(echo.HeaderLocation))
		}
	})

	t.Run("unknown role", func(t *testing.T) {
		e := newTestEcho()
		rec := httptest.NewRecorder()
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/login", nil), rec)
		middleware.SetSession(c, &domain.Session{ID: "s1", Role: "staff"})

		_ = handler.LoginPage(c)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200 for unrecognised role, got %d", rec.Code)
		}
	})
}

func TestAuthHandler_Register_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
			if in.Email != "bob@example.com" || in.Role != domain.RoleStaff || in.Name != "Bob" {
				t.Fatalf("unexpected input: %+v", in)
			}
			return &domain.User{ID: "u2", Name: in.Name, Email: in.Email, Role: in.Role, PasswordHash: "hash"}, nil
		},
	}
	handler := NewAuthHandler(stub, CookieOptions{})

	req := jsonRequest(http.MethodPost, "/v1/users", `{"name":"Bob","email":"bob@example.com","password":"longenough","role":"Staff"}`)
	rec := httptest.NewRecorder()

	if err := handler.Register(e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "hash") {
		t.Fatalf("password hash leaked: %s", rec.Body.String())
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	user, ok := resp["user"].(map[string]any)
	if !ok || user["email"] != "bob@example.com" || user["role"] != "Staff" {
		t.Fatalf("unexpected user payload: %+v", resp["user"])
	}
}

func TestAuthHandler_Register_Rejects(t *testing.T) {
	cases := map[string]struct {
		body   string
		svcErr error
		want   int
	}{
		"invalid json":   {body: "not-json", want: http.StatusBadRequest},
		"lowercase role": {body: `{"name":"Bob","email":"bob@example.com","password":"longenough","role":"staff"}`, want: http.StatusUnprocessableEntity},
		"short password": {body: `{"name":"Bob","email":"bob@example.com","password":"short","role":"Staff"}`, want: http.StatusUnprocessableEntity},
		"user exists": {
			body:   `{"name":"Bob","email":"bob@example.com","password":"longenough","role":"Staff"}`,
			svcErr: domain.ErrUserExists,
			want:   http.StatusConflict,
		},
		"unknown role": {
			body:   `{"name":"Bob","email":"bob@example.com","password":"longenough","role":"Admin"}`,
			svcErr: domain.ErrUnknownRole,
			want:   http.StatusBadRequest,
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			e := newTestEcho()
			stub := &stubAuthService{
				registerFn: func(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
					if tc.svcErr == nil {
						t.Fatalf("should not be called")
					}
					return nil, tc.svcErr
				},
			}
			handler := NewAuthHandler(stub, CookieOptions{})

			rec := httptest.NewRecorder()
			_ = handler.Register(e.NewContext(jsonRequest(http.MethodPost, "/v1/users", tc.body), rec))

			if rec.Code != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, rec.Code)
			}
		})
	}
}
