package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yichenlu/heygen-video-backend/internal/repo/memory"
	"github.com/yichenlu/heygen-video-backend/pkg/types"
)

// RequestsHandler exposes the registry contents for debugging and
// monitoring. Read-only, no provider calls.
type RequestsHandler struct {
	Repo *memory.RequestRepo
}

func NewRequestsHandler(repo *memory.RequestRepo) *RequestsHandler {
	return &RequestsHandler{Repo: repo}
}

func (h *RequestsHandler) List(c *gin.Context) {
	records := h.Repo.List()
	out := make(map[string]types.RequestSummary, len(records))
	for id, rec := range records {
		out[id] = summarize(rec)
	}
	c.JSON(http.StatusOK, types.RequestListResp{
		TotalRequests: len(out),
		Requests:      out,
	})
}

func (h *RequestsHandler) Details(c *gin.Context) {
	rec, ok := h.Repo.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "not_found", "message": "request not found"})
		return
	}
	c.JSON(http.StatusOK, summarize(rec))
}

func summarize(rec memory.Request) types.RequestSummary {
	s := types.RequestSummary{
		RequestID:   rec.ID,
		VideoID:     rec.VideoID,
		ScriptText:  rec.ScriptText,
		Title:       rec.Title,
		UseCaptions: rec.UseCaptions,
		Status:      rec.Status,
		CreatedAt:   rec.CreatedAt.Format(time.RFC3339),
	}
	if !rec.LastChecked.IsZero() {
		s.LastChecked = rec.LastChecked.Format(time.RFC3339)
	}
	return s
}
