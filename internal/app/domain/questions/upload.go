package questions

import (
	"sync"
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
)

// Status is the lifecycle of an upload candidate. Pending and Ready cover
// the validation window; the upload action is only honoured for Ready.
type Status string

const (
	StatusPending   Status = "Pending"
	StatusReady     Status = "Ready"
	StatusUploading Status = "Uploading"
	StatusCompleted Status = "Completed"
	StatusFailed    Status = "Failed"
)

// Candidate is one selected file moving through validation and upload.
type Candidate struct {
	ID               string   `json:"id"`
	Filename         string   `json:"filename"`
	Size             int64    `json:"size"`
	Status           Status   `json:"status"`
	Progress         int      `json:"progress"`
	ValidationErrors []string `json:"validationErrors,omitempty"`
	Message          string   `json:"message,omitempty"`
}

func (c Candidate) terminal() bool {
	return c.Status == StatusCompleted || c.Status == StatusFailed
}

// Tracker keeps upload candidates addressable across requests while the
// transfer runs in the background. Entries expire on their own once the UI
// stops polling.
type Tracker struct {
	mu    sync.Mutex
	store *gocache.Cache
}

func NewTracker(ttl time.Duration) *Tracker {
	return &Tracker{store: gocache.New(ttl, 2*ttl)}
}

func (t *Tracker) Create(filename string, size int64) Candidate {
	cand := Candidate{
		ID:       uuid.NewString(),
		Filename: filename,
		Size:     size,
		Status:   StatusPending,
	}
	t.store.SetDefault(cand.ID, cand)
	return cand
}

func (t *Tracker) Get(id string) (Candidate, bool) {
	v, ok := t.store.Get(id)
	if !ok {
		return Candidate{}, false
	}
	return v.(Candidate), true
}

func (t *Tracker) update(id string, mutate func(*Candidate)) (Candidate, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	cand, ok := t.Get(id)
	if !ok {
		return Candidate{}, false
	}
	mutate(&cand)
	t.store.SetDefault(id, cand)
	return cand, true
}

func (t *Tracker) SetReady(id string) {
	t.update(id, func(c *Candidate) {
		if c.Status == StatusPending {
			c.Status = StatusReady
		}
	})
}

func (t *Tracker) SetUploading(id string) {
	t.update(id, func(c *Candidate) {
		if c.Status == StatusReady {
			c.Status = StatusUploading
		}
	})
}

// SetProgress records transfer progress. It never moves backwards and never
// touches a terminal candidate.
func (t *Tracker) SetProgress(id string, percent int) {
	t.update(id, func(c *Candidate) {
		if c.terminal() {
			return
		}
		if percent > 100 {
			percent = 100
		}
		if percent > c.Progress {
			c.Progress = percent
		}
	})
}

func (t *Tracker) Complete(id, message string) {
	t.update(id, func(c *Candidate) {
		c.Status = StatusCompleted
		c.Progress = 100
		c.Message = message
	})
}

func (t *Tracker) Fail(id, message string, validationErrors []string) {
	t.update(id, func(c *Candidate) {
		c.Status = StatusFailed
		c.Message = message
		c.ValidationErrors = validationErrors
	})
}
