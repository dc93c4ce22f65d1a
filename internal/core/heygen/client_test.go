package heygen

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yichenlu/heygen-video-backend/internal/config"
	"github.com/yichenlu/heygen-video-backend/pkg/types"
)

func testConfig(baseURL string) config.Config {
	return config.Config{
		APIKey:        "test-key",
		BaseURL:       baseURL,
		TemplateID:    "tmpl123",
		AvatarID:      "avatar123",
		VoiceID:       "voice123",
		BackgroundURL: "https://static.example/bg.png",
	}
}

func TestClient_Submit(t *testing.T) {
	var gotPath, gotKey string
	var gotBody map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("X-Api-Key")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":{"video_id":"vid_abc"}}`))
	}))
	defer srv.Close()

	c := New(testConfig(srv.URL))
	videoID, err := c.Submit(context.Background(), "Hello world!", true, "Demo")
	require.NoError(t, err)
	assert.Equal(t, "vid_abc", videoID)

	assert.Equal(t, "/v2/template/tmpl123/generate", gotPath)
	assert.Equal(t, "test-key", gotKey)
	assert.Equal(t, true, gotBody["caption"])
	assert.Equal(t, "Demo", gotBody["title"])
	vars := gotBody["variables"].(map[string]interface{})
	script := vars["script_content"].(map[string]interface{})["properties"].(map[string]interface{})
	assert.Equal(t, "Hello world!", script["content"])
}

func TestClient_Submit_NoAPIKey(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL)
	cfg.APIKey = ""
	c := New(cfg)

	_, err := c.Submit(context.Background(), "Hello", false, "")
	require.ErrorIs(t, err, ErrAuth)
	assert.Zero(t, calls)
}

func TestClient_Submit_ErrorClassification(t *testing.T) {
	cases := []struct {
		name   string
		code   int
		expect error
	}{
		{"unauthorized", http.StatusUnauthorized, ErrAuth},
		{"forbidden", http.StatusForbidden, ErrAuth},
		{"bad request", http.StatusBadRequest, ErrRejected},
		{"quota", http.StatusTooManyRequests, ErrRejected},
		{"server error", http.StatusInternalServerError, ErrUnavailable},
		{"bad gateway", http.StatusBadGateway, ErrUnavailable},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.code)
			}))
			defer srv.Close()

			c := New(testConfig(srv.URL))
			_, err := c.Submit(context.Background(), "Hello", false, "")
			require.ErrorIs(t, err, tc.expect)
		})
	}
}

func TestClient_Submit_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	c := New(testConfig(srv.URL))
	_, err := c.Submit(context.Background(), "Hello", false, "")
	require.ErrorIs(t, err, ErrUnavailable)
}

func TestClient_Submit_ResponseWithoutVideoID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":{}}`))
	}))
	defer srv.Close()

	c := New(testConfig(srv.URL))
	_, err := c.Submit(context.Background(), "Hello", false, "")
	require.ErrorIs(t, err, ErrRejected)
}

func TestClient_PollStatus_Completed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/video_status.get", r.URL.Path)
		assert.Equal(t, "vid_abc", r.URL.Query().Get("video_id"))
		assert.Equal(t, "test-key", r.Header.Get("X-Api-Key"))
		w.Write([]byte(`{"data":{
			"status":"completed",
			"video_url":"https://cdn.example/v1.mp4",
			"caption_url":"https://cdn.example/v1.vtt",
			"thumbnail_url":"https://cdn.example/v1.jpg",
			"duration":12.5
		}}`))
	}))
	defer srv.Close()

	c := New(testConfig(srv.URL))
	res, err := c.PollStatus(context.Background(), "vid_abc")
	require.NoError(t, err)
	assert.Equal(t, types.StatusCompleted, res.Status)
	assert.Equal(t, "https://cdn.example/v1.mp4", res.VideoURL)
	assert.Equal(t, "https://cdn.example/v1.vtt", res.CaptionURL)
	assert.Equal(t, "https://cdn.example/v1.jpg", res.ThumbnailURL)
	assert.Equal(t, 12.5, res.Duration)
}

func TestClient_PollStatus_Mapping(t *testing.T) {
	cases := []struct {
		provider string
		want     types.Status
	}{
		{"pending", types.StatusPending},
		{"waiting", types.StatusPending},
		{"processing", types.StatusProcessing},
		{"completed", types.StatusCompleted},
		{"failed", types.StatusFailed},
		{"some_future_state", types.StatusProcessing},
	}
	for _, tc := range cases {
		t.Run(tc.provider, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				json.NewEncoder(w).Encode(map[string]interface{}{
					"data": map[string]interface{}{"status": tc.provider},
				})
			}))
			defer srv.Close()

			c := New(testConfig(srv.URL))
			res, err := c.PollStatus(context.Background(), "vid_abc")
			require.NoError(t, err)
			assert.Equal(t, tc.want, res.Status)
		})
	}
}

func TestClient_PollStatus_FailedCarriesReason(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":{"status":"failed","error":"avatar render error","video_url":"should_be_ignored"}}`))
	}))
	defer srv.Close()

	c := New(testConfig(srv.URL))
	res, err := c.PollStatus(context.Background(), "vid_abc")
	require.NoError(t, err)
	assert.Equal(t, types.StatusFailed, res.Status)
	assert.Equal(t, "avatar render error", res.Error)
	assert.Empty(t, res.VideoURL)
}

func TestClient_PollStatus_UnknownVideo(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := New(testConfig(srv.URL))
	_, err := c.PollStatus(context.Background(), "vid_gone")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestClient_HealthCheck(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Even a 404 from the base URL proves the endpoint is reachable.
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	assert.True(t, New(testConfig(srv.URL)).HealthCheck(context.Background()))

	noKey := testConfig(srv.URL)
	noKey.APIKey = ""
	assert.False(t, New(noKey).HealthCheck(context.Background()))

	srv.Close()
	assert.False(t, New(testConfig(srv.URL)).HealthCheck(context.Background()))
}
