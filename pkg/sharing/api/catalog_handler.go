package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/tendant/simple-sharing/pkg/sharing"
)

// CatalogHandler handles account login and profile issuance requests
type CatalogHandler struct {
	service sharing.Service
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(service sharing.Service) *CatalogHandler {
	return &CatalogHandler{service: service}
}

// Routes returns the routes for the catalog
func (h *CatalogHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/login", h.Login)
	r.Post("/{provider}/profile", h.IssueProfile)

	return r
}

// LoginRequest is the request body for a social login
type LoginRequest struct {
	Email          string `json:"email"`
	Image          string `json:"image"`
	SocialPlatform string `json:"socialPlatform"`
	SocialID       string `json:"socialId"`
	SocialName     string `json:"socialName"`
}

// AccountResponse is the external representation of an account
type AccountResponse struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	Image          string `json:"image,omitempty"`
	SocialPlatform string `json:"socialPlatform"`
	SocialName     string `json:"socialName"`
}

// LoginResponse is the response body for a social login
type LoginResponse struct {
	Account AccountResponse `json:"account"`
}

// Login upserts the account for a completed social sign-in
func (h *CatalogHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Failed to decode login request", "error", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Email == "" || req.SocialName == "" {
		slog.Error("Login request is missing required fields")
		http.Error(w, "email and socialName are required", http.StatusBadRequest)
		return
	}

	account, created, err := h.service.Login(r.Context(), sharing.LoginRequest{
		Email:          req.Email,
		Image:          req.Image,
		SocialPlatform: req.SocialPlatform,
		SocialID:       req.SocialID,
		SocialName:     req.SocialName,
	})
	if err != nil {
		slog.Error("Failed to login account", "error", err)
		http.Error(w, "Login failed", http.StatusInternalServerError)
		return
	}

	resp := LoginResponse{Account: AccountResponse{
		ID:             account.ID.String(),
		Name:           account.Name,
		Email:          account.Email,
		Image:          account.Image,
		SocialPlatform: account.SocialPlatform,
		SocialName:     account.SocialName,
	}}

	slog.Info("Account logged in", "account", account.Name, "created", created)
	if created {
		render.Status(r, http.StatusCreated)
	}
	render.JSON(w, r, resp)
}

// IssueProfileRequest is the request body for issuing a profile
type IssueProfileRequest struct {
	Recipient string `json:"recipient"`
	TTL       int64  `json:"ttl"`
}

// IssueProfileResponse is the response body for issuing a profile
type IssueProfileResponse struct {
	Profile *sharing.Profile `json:"profile"`
}

// IssueProfile mints a credential profile for a recipient of the provider
// named in the path
func (h *CatalogHandler) IssueProfile(w http.ResponseWriter, r *http.Request) {
	provider := chi.URLParam(r, "provider")

	var req IssueProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Failed to decode profile request", "error", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Recipient == "" {
		slog.Error("Profile request is missing recipient")
		http.Error(w, "recipient is required", http.StatusBadRequest)
		return
	}

	profile, err := h.service.IssueProfile(r.Context(), sharing.IssueProfileRequest{
		Provider:   provider,
		Recipient:  req.Recipient,
		TTLSeconds: req.TTL,
	})
	if err != nil {
		if errors.Is(err, sharing.ErrAccountNotFound) {
			slog.Error("Unknown provider or recipient", "provider", provider, "recipient", req.Recipient)
			http.Error(w, "Unknown provider or recipient", http.StatusUnauthorized)
			return
		}
		if errors.Is(err, sharing.ErrDuplicateRecord) {
			slog.Error("Token was already registered", "provider", provider)
			http.Error(w, "Conflict", http.StatusConflict)
			return
		}
		slog.Error("Failed to issue profile", "provider", provider, "error", err)
		http.Error(w, "Failed to issue profile", http.StatusInternalServerError)
		return
	}

	slog.Info("Profile issued", "provider", provider, "recipient", req.Recipient)
	render.JSON(w, r, IssueProfileResponse{Profile: profile})
}
