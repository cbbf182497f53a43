package login

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"
	"github.com/go-chi/render"
	"github.com/google/uuid"
	"github.com/tendant/breadsaver/pkg/account"
	apperrors "github.com/tendant/breadsaver/pkg/errors"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Success bool                `json:"success"`
	User    account.ProfileView `json:"user"`
	Token   string              `json:"token"`
}

type SessionResponse struct {
	UserID    uuid.UUID `json:"user_id"`
	Email     string    `json:"email"`
	ExpiresAt time.Time `json:"expires_at"`
}

type Handle struct {
	loginService *LoginService
}

func NewHandle(loginService *LoginService) *Handle {
	return &Handle{loginService: loginService}
}

// RegisterRoutes adds the password login and session routes to r
func (h *Handle) RegisterRoutes(r chi.Router) {
	r.Post("/login", h.PostLogin)
	r.Get("/session", h.GetSession)
	r.Post("/logout", h.PostLogout)
}

// Login with email and password
// (POST /login)
func (h *Handle) PostLogin(w http.ResponseWriter, r *http.Request) {
	var data LoginRequest
	if err := render.DecodeJSON(r.Body, &data); err != nil {
		apperrors.Render(w, r, err)
		return
	}

	result, err := h.loginService.Login(r.Context(), data.Email, data.Password)
	if err != nil {
		apperrors.Render(w, r, err)
		return
	}

	render.JSON(w, r, LoginResponse{Success: true, User: result.User, Token: result.Token})
}

// Describe the bearer token's session
// (GET /session)
func (h *Handle) GetSession(w http.ResponseWriter, r *http.Request) {
	claims, err := h.loginService.Session(r.Context(), jwtauth.TokenFromHeader(r))
	if err != nil {
		apperrors.Render(w, r, err)
		return
	}
	render.JSON(w, r, SessionResponse{UserID: claims.UserID, Email: claims.Email, ExpiresAt: claims.ExpiresAt})
}

// Revoke the bearer token
// (POST /logout)
func (h *Handle) PostLogout(w http.ResponseWriter, r *http.Request) {
	if err := h.loginService.Logout(r.Context(), jwtauth.TokenFromHeader(r)); err != nil {
		apperrors.Render(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
