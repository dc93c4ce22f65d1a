package types

// Status of a tracked video request. The provider is the source of truth;
// the coordinator only mirrors what it reports.
type Status string

const (
	StatusPending    Status = "PENDING"
	StatusProcessing Status = "PROCESSING"
	StatusCompleted  Status = "COMPLETED"
	StatusFailed     Status = "FAILED"
)

// Terminal reports whether no further transition can occur.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

type GenerateReq struct {
	ScriptText  string `json:"script_text" binding:"required"`
	UseCaptions bool   `json:"use_captions"`
	Title       string `json:"title"`
}

type GenerateResp struct {
	RequestID string `json:"request_id"`
}

type RetrieveReq struct {
	RequestID string `json:"request_id" binding:"required"`
}

type RetrieveResp struct {
	RequestID    string  `json:"request_id"`
	Status       Status  `json:"status"`
	VideoURL     string  `json:"video_url,omitempty"`
	CaptionURL   string  `json:"caption_url,omitempty"`
	ThumbnailURL string  `json:"thumbnail_url,omitempty"`
	Duration     float64 `json:"duration,omitempty"`
	Error        string  `json:"error,omitempty"`
}

type HealthResp struct {
	Status           string `json:"status"`
	APIKeyConfigured bool   `json:"api_key_configured"`
}

type RequestSummary struct {
	RequestID   string `json:"request_id"`
	VideoID     string `json:"video_id"`
	ScriptText  string `json:"script_text"`
	Title       string `json:"title,omitempty"`
	UseCaptions bool   `json:"use_captions"`
	Status      Status `json:"status"`
	CreatedAt   string `json:"created_at"`
	LastChecked string `json:"last_checked,omitempty"`
}

type RequestListResp struct {
	TotalRequests int                       `json:"total_requests"`
	Requests      map[string]RequestSummary `json:"requests"`
}

type StreamEvent struct {
	Type       string `json:"type"`
	RequestID  string `json:"request_id"`
	Status     Status `json:"status,omitempty"`
	VideoURL   string `json:"video_url,omitempty"`
	CaptionURL string `json:"caption_url,omitempty"`
	Ts         int64  `json:"ts"`
}
