package caches

import (
	"fmt"
	"time"

	lru "github.com/hashicorp/golang-lru"
	"github.com/pkg/errors"
)

// SessionStatus is what the launcher remembers about a runner session,
// including sessions that already finished.
type SessionStatus struct {
	SessionID string    `json:"sessionId"`
	BatchID   string    `json:"batchId"`
	Winner    string    `json:"winner,omitempty"`
	Done      bool      `json:"done"`
	StartedAt time.Time `json:"startedAt"`
}

// SessionCache keeps a bounded history of runner sessions so status queries
// keep working after a runner completes and is removed from its batch.
type SessionCache struct {
	sessions *lru.Cache
}

func NewSessionCache() (*SessionCache, error) {
	size := 10000
	sessions, err := lru.New(size)
	if err != nil {
		return nil, errors.Wrap(err, "Unable to initialize session cache")
	}
	return &SessionCache{
		sessions: sessions,
	}, nil
}

func (c *SessionCache) Add(status *SessionStatus) error {
	if status == nil || status.SessionID == "" {
		return fmt.Errorf("Invalid session status [%+v]", status)
	}
	c.sessions.Add(status.SessionID, status)
	return nil
}

func (c *SessionCache) Get(sessionID string) (*SessionStatus, bool) {
	v, exists := c.sessions.Get(sessionID)
	if !exists {
		return nil, false
	}
	return v.(*SessionStatus), true
}
