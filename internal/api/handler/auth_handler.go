package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/learnhub/institute-console/internal/api/metrics"
	"github.com/learnhub/institute-console/internal/api/middleware"
	"github.com/learnhub/institute-console/internal/core/domain"
	"github.com/learnhub/institute-console/internal/core/ports"
	"github.com/learnhub/institute-console/internal/core/service"
)

// CookieOptions controls the session cookie written at login.
type CookieOptions struct {
	Secure bool
	TTL    time.Duration
}

type AuthHandler struct {
	authService ports.AuthService
	cookie      CookieOptions
}

func NewAuthHandler(authService ports.AuthService, cookie CookieOptions) *AuthHandler {
	if cookie.TTL <= 0 {
		cookie.TTL = 24 * time.Hour
	}
	return &AuthHandler{authService: authService, cookie: cookie}
}

// Login authenticates a console user, stores the session and returns a JWT.
// The same token is set as the session cookie for browsers.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Param        from  query     string        false "Route to return to"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, errorResponse{Error: err.Error()})
	}

	result, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		// Unknown accounts answer like bad passwords.
		if errors.Is(err, domain.ErrInvalidCredentials) || errors.Is(err, domain.ErrUserNotFound) {
			metrics.LoginAttemptsTotal.WithLabelValues("invalid_credentials").Inc()
			return c.JSON(http.StatusUnauthorized, errorResponse{Error: "invalid credentials"})
		}
		metrics.LoginAttemptsTotal.WithLabelValues("error").Inc()
		return err
	}
	metrics.LoginAttemptsTotal.WithLabelValues("success").Inc()

	expires := time.Now().Add(h.cookie.TTL)
	c.SetCookie(&http.Cookie{
		Name:     domain.SessionKey,
		Value:    result.Token,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	})

	return c.JSON(http.StatusOK, loginResponse{
		Token:     result.Token,
		ExpiresAt: expires.UTC(),
		Session:   toSessionResponse(result.Session),
		Redirect:  landingPath(result.Session, c.QueryParam("from")),
	})
}

// Logout deletes the caller's stored session and clears the cookie. It
// succeeds for anonymous callers too.
//
// @Summary      Logout
// @Tags         auth
// @Success      204
// @Failure      500   {object}  errorResponse
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	if err := h.authService.Logout(c.Request().Context(), middleware.SessionIDFrom(c)); err != nil {
		return err
	}

	c.SetCookie(&http.Cookie{
		Name:     domain.SessionKey,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	return c.NoContent(http.StatusNoContent)
}

// LoginPage answers the login route. Authenticated users are sent back into
// the console; everyone else is told to log in.
//
// @Summary      Login page
// @Tags         auth
// @Produce      json
// @Param        from  query     string  false  "Route to return to after login"
// @Success      200   {object}  loginPageResponse
// @Success      302
// @Router       /login [get]
func (h *AuthHandler) LoginPage(c echo.Context) error {
	from := c.QueryParam("from")
	if session := middleware.SessionFrom(c); session.Authenticated() {
		return c.Redirect(http.StatusFound, landingPath(session, from))
	}
	return c.JSON(http.StatusOK, loginPageResponse{Status: "login_required", From: from})
}

// Register creates an Admin or Staff account.
//
// @Summary      Create a console user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      registerRequest  true  "User details"
// @Success      201   {object}  userResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/users [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, errorResponse{Error: err.Error()})
	}

	user, err := h.authService.Register(c.Request().Context(), ports.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     domain.Role(req.Role),
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserExists):
			return c.JSON(http.StatusConflict, errorResponse{Error: "user already exists"})
		case errors.Is(err, domain.ErrUnknownRole), errors.Is(err, domain.ErrInvalidCredentials):
			return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		}
		return err
	}

	return c.JSON(http.StatusCreated, userResponse{User: user})
}

// landingPath is where a freshly authenticated session goes: the route it
// came from when the Gate allows it, otherwise the console root.
func landingPath(session *domain.Session, from string) string {
	if from == "" || !strings.HasPrefix(from, "/") || strings.HasPrefix(from, "//") {
		return "/"
	}
	if service.Authorize(session, from).Allowed() {
		return from
	}
	return "/"
}
