package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/yichenlu/heygen-video-backend/internal/core/video"
	"github.com/yichenlu/heygen-video-backend/pkg/types"
	"github.com/yichenlu/heygen-video-backend/pkg/ws"
)

const pollInterval = 3 * time.Second

// StreamHandler pushes status updates for one request over a websocket
// until the request settles or the client goes away.
type StreamHandler struct {
	Hub      *ws.Hub
	Svc      *video.Service
	Upgrader websocket.Upgrader
	Interval time.Duration
}

func NewStreamHandler(h *ws.Hub, svc *video.Service) *StreamHandler {
	return &StreamHandler{
		Hub: h,
		Svc: svc,
		Upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		Interval: pollInterval,
	}
}

func (h *StreamHandler) WS(c *gin.Context) {
	id := c.Query("request_id")
	if id == "" {
		c.Status(http.StatusBadRequest)
		return
	}
	resp, _, err := h.Svc.Retrieve(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, video.ErrNotFound) {
			c.Status(http.StatusNotFound)
			return
		}
		c.Status(http.StatusBadGateway)
		return
	}

	conn, err := h.Upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}
	// All writes go through the locked wrapper; hub broadcasts from the
	// retrieve handler share this connection with the loop below.
	wc := ws.NewConn(conn)
	h.Hub.Add(id, wc)
	defer func() {
		h.Hub.Remove(id, wc)
		conn.Close()
	}()

	conn.SetReadLimit(1 << 20)
	conn.SetReadDeadline(time.Now().Add(10 * time.Minute))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(10 * time.Minute))
		return nil
	})

	if !h.write(wc, resp) || resp.Status.Terminal() {
		return
	}

	// The read loop only exists to notice the peer closing.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(h.Interval)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			resp, changed, err := h.Svc.Retrieve(c.Request.Context(), id)
			if err != nil {
				return
			}
			if changed || resp.Status.Terminal() {
				if !h.write(wc, resp) {
					return
				}
			}
			if resp.Status.Terminal() {
				return
			}
		}
	}
}

func (h *StreamHandler) write(wc *ws.Conn, resp types.RetrieveResp) bool {
	return wc.WriteJSON(types.StreamEvent{
		Type:       "status",
		RequestID:  resp.RequestID,
		Status:     resp.Status,
		VideoURL:   resp.VideoURL,
		CaptionURL: resp.CaptionURL,
		Ts:         time.Now().UnixMilli(),
	}) == nil
}
