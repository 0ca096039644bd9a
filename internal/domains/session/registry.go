package session

import (
	"sync"

	"github.com/google/uuid"
	"github.com/yashvi-chat/yashvi/pkg/Logger"
)

// Registry holds live sessions for the process. Nothing is persisted;
// every record dies with the process.
type Registry struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*Session
	logger   *Logger.Logger
}

func NewRegistry(logger *Logger.Logger) *Registry {
	return &Registry{
		sessions: make(map[uuid.UUID]*Session),
		logger:   logger,
	}
}

// Create registers a fresh unauthenticated session.
func (r *Registry) Create() *Session {
	s := newSession()
	r.mu.Lock()
	r.sessions[s.ID] = s
	r.mu.Unlock()
	r.logger.Debugf("session created: %s", s.ID)
	return s
}

func (r *Registry) Get(id uuid.UUID) (*Session, bool) {
	r.mu.RLock()
	s, ok := r.sessions[id]
	r.mu.RUnlock()
	return s, ok
}

// ClearAllHistories wipes every session's conversation memory and reports
// how many sessions were touched. Used by the admin clear-history action.
func (r *Registry) ClearAllHistories() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, s := range r.sessions {
		s.ClearHistory()
	}
	return len(r.sessions)
}
