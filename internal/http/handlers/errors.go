package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yichenlu/heygen-video-backend/internal/core/heygen"
	"github.com/yichenlu/heygen-video-backend/internal/core/video"
)

// writeError maps the service error taxonomy onto HTTP statuses. Bodies
// always carry a stable machine-readable kind plus the human detail.
func writeError(c *gin.Context, err error) {
	kind := "internal_error"
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, video.ErrInvalidRequest):
		kind, status = "invalid_request", http.StatusBadRequest
	case errors.Is(err, video.ErrNotFound):
		kind, status = "not_found", http.StatusNotFound
	case errors.Is(err, heygen.ErrAuth):
		kind, status = "provider_auth", http.StatusUnauthorized
	case errors.Is(err, heygen.ErrRejected):
		kind, status = "provider_rejected", http.StatusBadGateway
	case errors.Is(err, heygen.ErrNotFound):
		kind, status = "provider_not_found", http.StatusBadGateway
	case errors.Is(err, heygen.ErrUnavailable):
		kind, status = "provider_unavailable", http.StatusBadGateway
	}
	c.JSON(status, gin.H{"error": kind, "message": err.Error()})
}
