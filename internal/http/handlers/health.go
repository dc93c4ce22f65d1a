package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yichenlu/heygen-video-backend/internal/core/video"
	"github.com/yichenlu/heygen-video-backend/pkg/types"
)

type HealthHandler struct {
	Svc              *video.Service
	APIKeyConfigured bool
}

func NewHealthHandler(svc *video.Service, apiKeyConfigured bool) *HealthHandler {
	return &HealthHandler{Svc: svc, APIKeyConfigured: apiKeyConfigured}
}

func (h *HealthHandler) Check(c *gin.Context) {
	if !h.Svc.Health(c.Request.Context()) {
		c.JSON(http.StatusServiceUnavailable, types.HealthResp{
			Status:           "degraded",
			APIKeyConfigured: h.APIKeyConfigured,
		})
		return
	}
	c.JSON(http.StatusOK, types.HealthResp{
		Status:           "ok",
		APIKeyConfigured: h.APIKeyConfigured,
	})
}
