package heygen

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/yichenlu/heygen-video-backend/internal/config"
	"github.com/yichenlu/heygen-video-backend/pkg/types"
)

// PollResult is what a single status poll reports. URL fields are only
// populated once the provider says the video is completed.
type PollResult struct {
	Status       types.Status
	VideoURL     string
	CaptionURL   string
	ThumbnailURL string
	Duration     float64
	Error        string
}

type Client struct {
	apiKey        string
	baseURL       string
	templateID    string
	avatarID      string
	voiceID       string
	backgroundURL string
	hc            *http.Client
}

func New(cfg config.Config) *Client {
	tr := &http.Transport{
		Proxy:           http.ProxyFromEnvironment,
		TLSClientConfig: &tls.Config{MinVersion: tls.VersionTLS12},
		MaxIdleConns:    100,
		IdleConnTimeout: 90 * time.Second,
	}
	return &Client{
		apiKey:        cfg.APIKey,
		baseURL:       cfg.BaseURL,
		templateID:    cfg.TemplateID,
		avatarID:      cfg.AvatarID,
		voiceID:       cfg.VoiceID,
		backgroundURL: cfg.BackgroundURL,
		hc:            &http.Client{Transport: tr, Timeout: 30 * time.Second},
	}
}

// Submit starts a template generation and returns the provider's video id.
// One call is one billable submission; no retries happen at this layer.
func (c *Client) Submit(ctx context.Context, scriptText string, useCaptions bool, title string) (string, error) {
	if c.apiKey == "" {
		return "", fmt.Errorf("%w: HEYGEN_API_KEY not configured", ErrAuth)
	}
	if title == "" {
		title = "API_Video"
	}
	payload := map[string]interface{}{
		"caption": useCaptions,
		"dimension": map[string]int{
			"width":  1280,
			"height": 720,
		},
		"include_gif": false,
		"title":       title,
		"variables": map[string]interface{}{
			"voice_id": map[string]interface{}{
				"name": "voice_id",
				"type": "voice",
				"properties": map[string]interface{}{
					"voice_id": c.voiceID,
					"locale":   nil,
				},
			},
			"avatar_id": map[string]interface{}{
				"name": "avatar_id",
				"type": "character",
				"properties": map[string]interface{}{
					"character_id": c.avatarID,
					"type":         "talking_photo",
				},
			},
			"background_id": map[string]interface{}{
				"name": "background_id",
				"type": "image",
				"properties": map[string]interface{}{
					"url":      c.backgroundURL,
					"asset_id": nil,
					"fit":      "none",
				},
			},
			"script_content": map[string]interface{}{
				"name": "script_content",
				"type": "text",
				"properties": map[string]interface{}{
					"content": scriptText,
				},
			},
		},
		"enable_sharing": true,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("%w: encode payload: %v", ErrRejected, err)
	}

	u := fmt.Sprintf("%s/v2/template/%s/generate", c.baseURL, c.templateID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Api-Key", c.apiKey)

	resp, err := c.hc.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", c.classify(resp, "submit")
	}

	var out struct {
		Data struct {
			VideoID string `json:"video_id"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("%w: decode response: %v", ErrRejected, err)
	}
	if out.Data.VideoID == "" {
		return "", fmt.Errorf("%w: response carried no video_id", ErrRejected)
	}
	return out.Data.VideoID, nil
}

// PollStatus is read-only against the provider.
func (c *Client) PollStatus(ctx context.Context, videoID string) (PollResult, error) {
	u := fmt.Sprintf("%s/v1/video_status.get?video_id=%s", c.baseURL, url.QueryEscape(videoID))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return PollResult{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Api-Key", c.apiKey)

	resp, err := c.hc.Do(req)
	if err != nil {
		return PollResult{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return PollResult{}, c.classify(resp, "poll")
	}

	var out struct {
		Data struct {
			Status       string  `json:"status"`
			VideoURL     string  `json:"video_url"`
			CaptionURL   string  `json:"caption_url"`
			ThumbnailURL string  `json:"thumbnail_url"`
			Duration     float64 `json:"duration"`
			Error        string  `json:"error"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return PollResult{}, fmt.Errorf("%w: decode response: %v", ErrUnavailable, err)
	}

	r := PollResult{Status: mapStatus(out.Data.Status)}
	switch r.Status {
	case types.StatusCompleted:
		r.VideoURL = out.Data.VideoURL
		r.CaptionURL = out.Data.CaptionURL
		r.ThumbnailURL = out.Data.ThumbnailURL
		r.Duration = out.Data.Duration
	case types.StatusFailed:
		r.Error = out.Data.Error
	}
	return r, nil
}

// HealthCheck reports whether the client is configured and the provider
// endpoint answers at all. Any HTTP response counts as reachable.
func (c *Client) HealthCheck(ctx context.Context) bool {
	if c.apiKey == "" {
		return false
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/", nil)
	if err != nil {
		return false
	}
	resp, err := c.hc.Do(req)
	if err != nil {
		return false
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	return true
}

func (c *Client) classify(resp *http.Response, op string) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return fmt.Errorf("%w: %s status %d: %s", ErrAuth, op, resp.StatusCode, body)
	case op == "poll" && resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, body)
	case resp.StatusCode >= 500:
		return fmt.Errorf("%w: %s status %d: %s", ErrUnavailable, op, resp.StatusCode, body)
	default:
		return fmt.Errorf("%w: %s status %d: %s", ErrRejected, op, resp.StatusCode, body)
	}
}

// HeyGen reports lowercase statuses; anything unrecognized is treated as
// still in flight so a new provider state never looks terminal.
func mapStatus(s string) types.Status {
	switch s {
	case "pending", "waiting":
		return types.StatusPending
	case "processing":
		return types.StatusProcessing
	case "completed":
		return types.StatusCompleted
	case "failed":
		return types.StatusFailed
	default:
		return types.StatusProcessing
	}
}
