package handler

import (
	"time"

	"github.com/learnhub/institute-console/internal/core/domain"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Auth ---

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type registerRequest struct {
	Name     string `json:"name"     validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role"     validate:"required,oneof=Admin Staff"`
}

type sessionResponse struct {
	ID       string      `json:"id"`
	Role     domain.Role `json:"role"`
	Identity string      `json:"identity"`
	Email    string      `json:"email,omitempty"`
	Name     string      `json:"name,omitempty"`
}

type loginResponse struct {
	Token     string          `json:"token"`
	ExpiresAt time.Time       `json:"expires_at"`
	Session   sessionResponse `json:"session"`
	Redirect  string          `json:"redirect"`
}

type loginPageResponse struct {
	Status string `json:"status"`
	From   string `json:"from,omitempty"`
}

type userResponse struct {
	User *domain.User `json:"user"`
}

// --- Navigation ---

type menuResponse struct {
	Role   domain.Role        `json:"role"`
	Groups []domain.MenuGroup `json:"groups"`
}

type authorizeResponse struct {
	Decision domain.Decision `json:"decision"`
	Location string          `json:"location,omitempty"`
}

type pageResponse struct {
	Route string             `json:"route"`
	Title string             `json:"title"`
	Role  domain.Role        `json:"role"`
	Menu  []domain.MenuGroup `json:"menu"`
}

func toSessionResponse(s *domain.Session) sessionResponse {
	return sessionResponse{
		ID:       s.ID,
		Role:     s.Role,
		Identity: s.Identity,
		Email:    s.Email,
		Name:     s.Name,
	}
}
