package memory

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/yichenlu/heygen-video-backend/pkg/types"
)

// Request is the registry's record of one submission. Records live for the
// process lifetime; there is no eviction.
type Request struct {
	ID           string
	VideoID      string
	ScriptText   string
	Title        string
	UseCaptions  bool
	Status       types.Status
	VideoURL     string
	CaptionURL   string
	ThumbnailURL string
	Duration     float64
	FailReason   string
	CreatedAt    time.Time
	LastChecked  time.Time
}

// StatusUpdate carries one refreshed provider view into the registry.
type StatusUpdate struct {
	Status       types.Status
	VideoURL     string
	CaptionURL   string
	ThumbnailURL string
	Duration     float64
	FailReason   string
}

type entry struct {
	mu  sync.Mutex
	req Request
}

// RequestRepo maps request ids to records. The outer lock guards the map,
// each entry has its own lock so updates to different requests don't
// serialize against each other.
type RequestRepo struct {
	mu sync.RWMutex
	m  map[string]*entry
}

func NewRequestRepo() *RequestRepo {
	return &RequestRepo{m: map[string]*entry{}}
}

// Create registers a freshly submitted job and returns its record. The
// request id is never reused within the process.
func (r *RequestRepo) Create(videoID, scriptText, title string, useCaptions bool) Request {
	req := Request{
		ID:          "req_" + uuid.NewString(),
		VideoID:     videoID,
		ScriptText:  scriptText,
		Title:       title,
		UseCaptions: useCaptions,
		Status:      types.StatusPending,
		CreatedAt:   time.Now(),
	}
	r.mu.Lock()
	r.m[req.ID] = &entry{req: req}
	r.mu.Unlock()
	return req
}

func (r *RequestRepo) Get(id string) (Request, bool) {
	r.mu.RLock()
	e, ok := r.m[id]
	r.mu.RUnlock()
	if !ok {
		return Request{}, false
	}
	e.mu.Lock()
	req := e.req
	e.mu.Unlock()
	return req, true
}

// Update applies a refreshed status. A terminal status is never replaced
// by a non-terminal one: a stale poll racing in after completion must not
// regress the record, so such writes are discarded and the stored record
// returned as-is.
func (r *RequestRepo) Update(id string, upd StatusUpdate) (Request, bool) {
	r.mu.RLock()
	e, ok := r.m[id]
	r.mu.RUnlock()
	if !ok {
		return Request{}, false
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.req.LastChecked = time.Now()
	if e.req.Status.Terminal() && !upd.Status.Terminal() {
		return e.req, true
	}
	e.req.Status = upd.Status
	e.req.VideoURL = upd.VideoURL
	e.req.CaptionURL = upd.CaptionURL
	e.req.ThumbnailURL = upd.ThumbnailURL
	e.req.Duration = upd.Duration
	e.req.FailReason = upd.FailReason
	return e.req, true
}

// List snapshots every record, keyed by request id.
func (r *RequestRepo) List() map[string]Request {
	r.mu.RLock()
	entries := make([]*entry, 0, len(r.m))
	for _, e := range r.m {
		entries = append(entries, e)
	}
	r.mu.RUnlock()
	out := make(map[string]Request, len(entries))
	for _, e := range entries {
		e.mu.Lock()
		req := e.req
		e.mu.Unlock()
		out[req.ID] = req
	}
	return out
}

func (r *RequestRepo) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.m)
}
