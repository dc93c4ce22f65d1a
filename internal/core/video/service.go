package video

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/sync/singleflight"

	"github.com/yichenlu/heygen-video-backend/internal/core/heygen"
	"github.com/yichenlu/heygen-video-backend/internal/repo/memory"
	"github.com/yichenlu/heygen-video-backend/pkg/log"
	"github.com/yichenlu/heygen-video-backend/pkg/types"
)

// Provider is the outbound contract to the avatar-video service. The real
// implementation is heygen.Client; tests substitute fakes.
type Provider interface {
	Submit(ctx context.Context, scriptText string, useCaptions bool, title string) (string, error)
	PollStatus(ctx context.Context, videoID string) (heygen.PollResult, error)
	HealthCheck(ctx context.Context) bool
}

// Service is the request lifecycle coordinator: it owns the submit path
// and the on-demand status refresh. All registry mutation goes through it.
type Service struct {
	Repo     *memory.RequestRepo
	Provider Provider
	Log      *log.Logger

	poll singleflight.Group
}

func NewService(repo *memory.RequestRepo, p Provider, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(log.LevelInfo, nil)
	}
	return &Service{Repo: repo, Provider: p, Log: logger}
}

// Generate submits one video generation job and returns the request id
// callers use to query status later. Provider failures propagate as-is;
// there is exactly one submission attempt per call, because retrying a
// paid generation here would risk duplicate billable jobs.
func (s *Service) Generate(ctx context.Context, req types.GenerateReq) (string, error) {
	if strings.TrimSpace(req.ScriptText) == "" {
		return "", fmt.Errorf("%w: script_text must not be empty", ErrInvalidRequest)
	}
	videoID, err := s.Provider.Submit(ctx, req.ScriptText, req.UseCaptions, req.Title)
	if err != nil {
		return "", err
	}
	rec := s.Repo.Create(videoID, req.ScriptText, req.Title, req.UseCaptions)
	s.Log.Info("video generation initiated: request_id=%s video_id=%s", rec.ID, videoID)
	return rec.ID, nil
}

// Retrieve returns the current view of a request, refreshing it from the
// provider when it is still in flight. The second return reports whether
// this call observed a status change. Transient provider unavailability
// never fails a retrieval: the last stored view is returned instead.
func (s *Service) Retrieve(ctx context.Context, requestID string) (types.RetrieveResp, bool, error) {
	rec, ok := s.Repo.Get(requestID)
	if !ok {
		return types.RetrieveResp{}, false, fmt.Errorf("%w: %s", ErrNotFound, requestID)
	}
	if rec.Status.Terminal() {
		return view(rec), false, nil
	}

	// Concurrent retrievals of one request share a single provider poll.
	v, err, _ := s.poll.Do(requestID, func() (interface{}, error) {
		res, err := s.Provider.PollStatus(ctx, rec.VideoID)
		if err != nil {
			if errors.Is(err, heygen.ErrUnavailable) {
				s.Log.Warn("status poll failed, returning last known state: request_id=%s: %v", requestID, err)
				return rec, nil
			}
			return nil, err
		}
		captionURL := res.CaptionURL
		if !rec.UseCaptions {
			// The caption asset only exists for requests that asked for it.
			captionURL = ""
		}
		updated, _ := s.Repo.Update(requestID, memory.StatusUpdate{
			Status:       res.Status,
			VideoURL:     res.VideoURL,
			CaptionURL:   captionURL,
			ThumbnailURL: res.ThumbnailURL,
			Duration:     res.Duration,
			FailReason:   res.Error,
		})
		return updated, nil
	})
	if err != nil {
		return types.RetrieveResp{}, false, err
	}
	updated := v.(memory.Request)
	if updated.Status != rec.Status {
		s.Log.Info("video status changed: request_id=%s video_id=%s status=%s", requestID, rec.VideoID, updated.Status)
		return view(updated), true, nil
	}
	return view(updated), false, nil
}

// Health reports whether the provider side of the system is usable.
func (s *Service) Health(ctx context.Context) bool {
	return s.Provider.HealthCheck(ctx)
}

func view(rec memory.Request) types.RetrieveResp {
	return types.RetrieveResp{
		RequestID:    rec.ID,
		Status:       rec.Status,
		VideoURL:     rec.VideoURL,
		CaptionURL:   rec.CaptionURL,
		ThumbnailURL: rec.ThumbnailURL,
		Duration:     rec.Duration,
		Error:        rec.FailReason,
	}
}
