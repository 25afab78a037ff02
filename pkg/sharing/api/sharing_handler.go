package api

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/tendant/simple-sharing/pkg/sharing"
	"github.com/tendant/simple-sharing/pkg/sharing/signer"
)

// SharingHandler handles recipient-facing requests under /sharing. Every
// route requires a verified bearer token.
type SharingHandler struct {
	service   sharing.Service
	signers   *signer.Registry
	urlExpiry time.Duration
}

// NewSharingHandler creates a new sharing handler
func NewSharingHandler(service sharing.Service, signers *signer.Registry, urlExpiry time.Duration) *SharingHandler {
	return &SharingHandler{
		service:   service,
		signers:   signers,
		urlExpiry: urlExpiry,
	}
}

// Routes returns the routes for recipient data access
func (h *SharingHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Route("/{provider}", func(r chi.Router) {
		r.Use(BearerVerifier(h.service))
		r.Get("/files", h.SignFile)
	})

	return r
}

// SignFileResponse is the response body for a presigned file URL
type SignFileResponse struct {
	URL        string `json:"url"`
	Expiration int64  `json:"expirationSeconds"`
}

// SignFile classifies the requested storage location and returns a
// presigned URL for it
func (h *SharingHandler) SignFile(w http.ResponseWriter, r *http.Request) {
	location := r.URL.Query().Get("location")
	if location == "" {
		slog.Error("File request is missing location")
		http.Error(w, "location is required", http.StatusBadRequest)
		return
	}

	loc, err := signer.ParseLocation(location)
	if err != nil {
		slog.Error("Failed to parse storage location", "location", location, "error", err)
		http.Error(w, "Invalid storage location", http.StatusBadRequest)
		return
	}

	url, err := h.signers.SignedURL(r.Context(), loc, h.urlExpiry)
	if err != nil {
		if errors.Is(err, sharing.ErrUnsupportedLocation) {
			slog.Error("Unsupported storage location", "location", location)
			http.Error(w, "Unsupported storage location", http.StatusBadRequest)
			return
		}
		slog.Error("Failed to sign storage location", "location", location, "error", err)
		http.Error(w, "Failed to sign storage location", http.StatusInternalServerError)
		return
	}

	slog.Info("File URL signed", "bucket", loc.Bucket, "path", loc.Path)
	render.JSON(w, r, SignFileResponse{
		URL:        url,
		Expiration: int64(h.urlExpiry / time.Second),
	})
}
