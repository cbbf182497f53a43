package api

import (
	"net/http"

	"github.com/ggicci/httpin"
	"github.com/go-chi/chi/v5"
	apperrors "github.com/tendant/breadsaver/pkg/errors"
	"github.com/tendant/breadsaver/pkg/externalprovider"
)

// InitiateInput is bound from the query of GET /google
type InitiateInput struct {
	Action string `in:"query=action"`
	State  string `in:"query=state"`
}

// CallbackInput is bound from the query of GET /callback/google
type CallbackInput struct {
	Code  string `in:"query=code"`
	State string `in:"query=state"`
}

// Handle serves the Google sign in endpoints
type Handle struct {
	externalProviderService *externalprovider.ExternalProviderService
}

// NewHandle creates a new external provider API handler
func NewHandle(externalProviderService *externalprovider.ExternalProviderService) *Handle {
	return &Handle{externalProviderService: externalProviderService}
}

// RegisterRoutes adds the initiate and callback routes to r
func (h *Handle) RegisterRoutes(r chi.Router) {
	r.With(httpin.NewInput(InitiateInput{})).Get("/google", h.InitiateOAuth2Flow)
	r.With(httpin.NewInput(CallbackInput{})).Get("/callback/google", h.HandleOAuth2Callback)
}

// InitiateOAuth2Flow redirects the browser to Google's consent screen
func (h *Handle) InitiateOAuth2Flow(w http.ResponseWriter, r *http.Request) {
	input := r.Context().Value(httpin.Input).(*InitiateInput)

	authURL := h.externalProviderService.InitiateOAuth2Flow(r.Context(), input.Action, input.State)
	http.Redirect(w, r, authURL, http.StatusFound)
}

// HandleOAuth2Callback finishes the flow and redirects to the callback page
func (h *Handle) HandleOAuth2Callback(w http.ResponseWriter, r *http.Request) {
	input := r.Context().Value(httpin.Input).(*CallbackInput)

	redirectURL, err := h.externalProviderService.HandleOAuth2Callback(r.Context(), input.Code, input.State)
	if err != nil {
		apperrors.Render(w, r, err)
		return
	}
	http.Redirect(w, r, redirectURL, http.StatusFound)
}
