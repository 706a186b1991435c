package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/learnhub/institute-console/internal/core/domain"
	"github.com/learnhub/institute-console/internal/core/ports"
)

// AuthOptions tunes token and session lifetimes.
type AuthOptions struct {
	JWTSecret string
	// TokenTTL bounds the signed token. Defaults to 24h.
	TokenTTL time.Duration
	// SessionTTL bounds the stored session record. Zero keeps it until logout.
	SessionTTL time.Duration
}

// AuthService implements registration, login and logout.
type AuthService struct {
	repo     ports.UserRepository
	sessions ports.SessionStore
	opts     AuthOptions
	now      func() time.Time
}

func NewAuthService(repo ports.UserRepository, sessions ports.SessionStore, opts AuthOptions) *AuthService {
	if opts.TokenTTL <= 0 {
		opts.TokenTTL = 24 * time.Hour
	}
	return &AuthService{repo: repo, sessions: sessions, opts: opts, now: time.Now}
}

func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || in.Password == "" {
		return nil, domain.ErrInvalidCredentials
	}
	if !in.Role.Known() {
		return nil, domain.ErrUnknownRole
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	user := &domain.User{
		Name:         strings.TrimSpace(in.Name),
		Email:        email,
		PasswordHash: string(hash),
		Role:         in.Role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	session := &domain.Session{
		ID:        uuid.NewString(),
		Role:      user.Role,
		Identity:  user.ID,
		Email:     user.Email,
		Name:      user.Name,
		CreatedAt: s.now().UTC(),
	}
	record, err := domain.EncodeSession(session)
	if err != nil {
		return nil, err
	}
	if err := s.sessions.Save(ctx, session.ID, record, s.opts.SessionTTL); err != nil {
		return nil, fmt.Errorf("login: save session: %w", err)
	}

	token, err := s.generateToken(session)
	if err != nil {
		return nil, err
	}

	return &ports.LoginResult{Token: token, Session: session}, nil
}

// Logout removes the stored session. Unknown ids are not an error.
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	if err := s.sessions.Delete(ctx, sessionID); err != nil && !errors.Is(err, domain.ErrSessionNotFound) {
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}

func (s *AuthService) generateToken(session *domain.Session) (string, error) {
	claims := jwt.MapClaims{
		"sid": session.ID,
		"sub": session.Identity,
		"iat": session.CreatedAt.Unix(),
		"exp": session.CreatedAt.Add(s.opts.TokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.opts.JWTSecret))
}
