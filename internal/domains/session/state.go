package session

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/looplab/fsm"
)

// Role is what the session authenticated as.
type Role string

const (
	RoleNone  Role = "none"
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Views the page can render; the session fsm walks between them.
const (
	ViewLogin = "login"
	ViewChat  = "chat"
	ViewAdmin = "admin"
)

const (
	eventLoginUser  = "login_user"
	eventLoginAdmin = "login_admin"
	eventLogout     = "logout"
)

// Turn is one (user, assistant) exchange. Turns are append-only and only
// cleared wholesale.
type Turn struct {
	User      string
	Assistant string
}

// Session is the per-browser-session record: authentication flags, the
// conversation memory, and the view state machine.
type Session struct {
	ID uuid.UUID

	mu            sync.Mutex
	authenticated bool
	role          Role
	history       []Turn
	view          *fsm.FSM
}

func newSession() *Session {
	return &Session{
		ID: uuid.New(),
		view: fsm.NewFSM(
			ViewLogin,
			fsm.Events{
				{Name: eventLoginUser, Src: []string{ViewLogin}, Dst: ViewChat},
				{Name: eventLoginAdmin, Src: []string{ViewLogin}, Dst: ViewAdmin},
				{Name: eventLogout, Src: []string{ViewChat, ViewAdmin}, Dst: ViewLogin},
			},
			fsm.Callbacks{},
		),
	}
}

// Authenticate transitions the session to the given role's view.
func (s *Session) Authenticate(ctx context.Context, role Role) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var event string
	switch role {
	case RoleUser:
		event = eventLoginUser
	case RoleAdmin:
		event = eventLoginAdmin
	default:
		return fmt.Errorf("cannot authenticate as role %q", role)
	}
	if err := s.view.Event(ctx, event); err != nil {
		return fmt.Errorf("view transition failed: %w", err)
	}
	s.authenticated = true
	s.role = role
	return nil
}

// Logout returns the session to the login view. History survives; only an
// admin clear wipes it.
func (s *Session) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.view.Event(ctx, eventLogout); err != nil {
		return fmt.Errorf("view transition failed: %w", err)
	}
	s.authenticated = false
	s.role = RoleNone
	return nil
}

func (s *Session) View() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view.Current()
}

func (s *Session) Authenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.authenticated
}

func (s *Session) Role() Role {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.authenticated {
		return RoleNone
	}
	return s.role
}

// AppendTurn commits one exchange to conversation memory.
func (s *Session) AppendTurn(t Turn) {
	s.mu.Lock()
	s.history = append(s.history, t)
	s.mu.Unlock()
}

// History returns a copy of the committed turns in submission order.
func (s *Session) History() []Turn {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Turn, len(s.history))
	copy(out, s.history)
	return out
}

func (s *Session) ClearHistory() {
	s.mu.Lock()
	s.history = nil
	s.mu.Unlock()
}
