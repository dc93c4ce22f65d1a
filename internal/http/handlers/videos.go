package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yichenlu/heygen-video-backend/internal/core/video"
	"github.com/yichenlu/heygen-video-backend/pkg/types"
	"github.com/yichenlu/heygen-video-backend/pkg/ws"
)

type VideosHandler struct {
	Svc *video.Service
	Hub *ws.Hub
}

func NewVideosHandler(svc *video.Service, hub *ws.Hub) *VideosHandler {
	return &VideosHandler{Svc: svc, Hub: hub}
}

func (h *VideosHandler) Generate(c *gin.Context) {
	var req types.GenerateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request", "message": "script_text is required"})
		return
	}
	id, err := h.Svc.Generate(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, types.GenerateResp{RequestID: id})
}

func (h *VideosHandler) Retrieve(c *gin.Context) {
	var req types.RetrieveReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request", "message": "request_id is required"})
		return
	}
	resp, changed, err := h.Svc.Retrieve(c.Request.Context(), req.RequestID)
	if err != nil {
		writeError(c, err)
		return
	}
	if changed {
		// Keep websocket watchers of this request in step with pollers.
		h.Hub.Broadcast(req.RequestID, types.StreamEvent{
			Type:       "status",
			RequestID:  resp.RequestID,
			Status:     resp.Status,
			VideoURL:   resp.VideoURL,
			CaptionURL: resp.CaptionURL,
			Ts:         time.Now().UnixMilli(),
		})
	}
	c.JSON(http.StatusOK, resp)
}
