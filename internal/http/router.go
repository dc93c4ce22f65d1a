package http

import (
	"github.com/gin-gonic/gin"

	"github.com/yichenlu/heygen-video-backend/internal/config"
	"github.com/yichenlu/heygen-video-backend/internal/core/heygen"
	"github.com/yichenlu/heygen-video-backend/internal/core/video"
	"github.com/yichenlu/heygen-video-backend/internal/http/handlers"
	"github.com/yichenlu/heygen-video-backend/internal/repo/memory"
	"github.com/yichenlu/heygen-video-backend/pkg/log"
	"github.com/yichenlu/heygen-video-backend/pkg/ws"
)

func NewRouter(cfg config.Config, logger *log.Logger) *gin.Engine {
	r := gin.Default()
	repo := memory.NewRequestRepo()
	provider := heygen.New(cfg)
	svc := video.NewService(repo, provider, logger)
	hub := ws.NewHub()

	vh := handlers.NewVideosHandler(svc, hub)
	hh := handlers.NewHealthHandler(svc, cfg.APIKey != "")
	rh := handlers.NewRequestsHandler(repo)
	sh := handlers.NewStreamHandler(hub, svc)

	r.POST("/generate", vh.Generate)
	r.POST("/retrieve", vh.Retrieve)
	r.GET("/health", hh.Check)
	r.GET("/requests", rh.List)
	r.GET("/requests/:id", rh.Details)
	r.GET("/stream", sh.WS)
	r.StaticFile("/", "./web/index.html")
	return r
}
