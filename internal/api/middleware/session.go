package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/learnhub/institute-console/internal/api/metrics"
	"github.com/learnhub/institute-console/internal/core/domain"
	"github.com/learnhub/institute-console/internal/core/ports"
)

const (
	contextSessionKey   = "session"
	contextSessionIDKey = "session_id"
)

// SessionFrom returns the session resolved for this request, or nil when the
// request is anonymous.
func SessionFrom(c echo.Context) *domain.Session {
	s, _ := c.Get(contextSessionKey).(*domain.Session)
	return s
}

// SessionIDFrom returns the id carried by the request token, even when the
// stored record could not be decoded.
func SessionIDFrom(c echo.Context) string {
	id, _ := c.Get(contextSessionIDKey).(string)
	return id
}

// SetSession attaches an authenticated session to the request context.
func SetSession(c echo.Context, s *domain.Session) {
	c.Set(contextSessionKey, s)
	if s != nil {
		c.Set(contextSessionIDKey, s.ID)
	}
}

// Session resolves the caller's session from a bearer token or the session
// cookie. It never rejects a request: a missing or invalid token, a missing
// record, or a record that fails to decode all leave the request anonymous.
func Session(jwtSecret string, store ports.SessionStore, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := tokenFrom(c.Request())
			if raw == "" {
				metrics.SessionResolutionsTotal.WithLabelValues("missing").Inc()
				return next(c)
			}

			sessionID, ok := parseSessionID(raw, jwtSecret)
			if !ok {
				metrics.SessionResolutionsTotal.WithLabelValues("invalid_token").Inc()
				return next(c)
			}
			c.Set(contextSessionIDKey, sessionID)

			record, err := store.Load(c.Request().Context(), sessionID)
			if err != nil {
				if errors.Is(err, domain.ErrSessionNotFound) {
					metrics.SessionResolutionsTotal.WithLabelValues("not_found").Inc()
				} else {
					metrics.SessionResolutionsTotal.WithLabelValues("store_error").Inc()
					log.Warn().Err(err).Str("session_id", sessionID).Msg("session lookup failed")
				}
				return next(c)
			}

			session, err := domain.DecodeSession(record)
			if err != nil {
				metrics.SessionResolutionsTotal.WithLabelValues("malformed").Inc()
				log.Debug().Err(err).Str("session_id", sessionID).Msg("discarding unreadable session")
				return next(c)
			}

			metrics.SessionResolutionsTotal.WithLabelValues("ok").Inc()
			SetSession(c, session)
			return next(c)
		}
	}
}

func tokenFrom(r *http.Request) string {
	if header := r.Header.Get("Authorization"); header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			return strings.TrimSpace(parts[1])
		}
		return ""
	}
	if cookie, err := r.Cookie(domain.SessionKey); err == nil {
		return cookie.Value
	}
	return ""
}

func parseSessionID(raw, secret string) (string, bool) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil || !tkn.Valid {
		return "", false
	}
	sid, _ := claims["sid"].(string)
	return sid, sid != ""
}
