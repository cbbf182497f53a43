package signup

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/tendant/breadsaver/pkg/account"
	apperrors "github.com/tendant/breadsaver/pkg/errors"
)

type SignupResponse struct {
	Success bool             `json:"success"`
	User    account.UserView `json:"user"`
}

type Handle struct {
	signupService *SignupService
}

func NewHandle(signupService *SignupService) *Handle {
	return &Handle{signupService: signupService}
}

func (h *Handle) RegisterRoutes(r chi.Router) {
	r.Post("/signup", h.PostSignup)
}

// PostSignup registers a password account
func (h *Handle) PostSignup(w http.ResponseWriter, r *http.Request) {
	var request SignupRequest
	if err := render.DecodeJSON(r.Body, &request); err != nil {
		apperrors.Render(w, r, err)
		return
	}

	user, err := h.signupService.Signup(r.Context(), request)
	if err != nil {
		apperrors.Render(w, r, err)
		return
	}

	render.JSON(w, r, SignupResponse{Success: true, User: user})
}
