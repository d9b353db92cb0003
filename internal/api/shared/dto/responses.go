package dto

import (
	"time"

	"github.com/feral-file/ff-minter/internal/domain"
)

// RelayErrorResponse is the flat error body of the public upload routes
type RelayErrorResponse struct {
	Error string `json:"error"`
}

// HealthResponse is the body of GET /health
type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}

// TokenListResponse is a filtered view of the gallery snapshot
type TokenListResponse struct {
	Tokens    []domain.GalleryItem `json:"tokens"`
	Total     int                  `json:"total"`
	UpdatedAt *time.Time           `json:"updated_at,omitempty"`
	// Stale is set when the latest refresh failed and the tokens come from an earlier pass
	Stale     bool   `json:"stale"`
	LastError string `json:"last_error,omitempty"`
}
