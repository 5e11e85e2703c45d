package application

import (
	"sync"

	"github.com/google/uuid"
	"github.com/tsaratour/service-booking/internal/domain/draft"
	"github.com/tsaratour/service-booking/internal/platform/domain"
)

const (
	// MsgActionInProgress is returned when the same action is already running on a session.
	MsgActionInProgress = "action déjà en cours"
	// MsgSubmissionInProgress is returned when a draft is changed while it is being submitted.
	MsgSubmissionInProgress = "soumission en cours"
)

// Session actions taken through Begin. Submit excludes every other action.
const (
	actionSubmit    = "submit"
	actionSetClient = "client"
)

func actionAdd(kind draft.Kind) string    { return "add:" + string(kind) }
func actionRemove(kind draft.Kind) string { return "remove:" + string(kind) }

// Session is one wizard session holding a draft. All draft access goes through
// Update or View.
type Session struct {
	mu    sync.Mutex
	draft *draft.Draft

	guardMu  sync.Mutex
	inFlight map[string]struct{}
}

func newSession(d *draft.Draft) *Session {
	return &Session{draft: d, inFlight: make(map[string]struct{})}
}

// ID returns the draft id.
func (s *Session) ID() uuid.UUID { return s.draft.ID() }

// OwnerID returns the back-office user owning the session.
func (s *Session) OwnerID() string { return s.draft.OwnerID() }

// Update runs fn with exclusive access to the draft.
func (s *Session) Update(fn func(d *draft.Draft) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.draft)
}

// View runs fn with exclusive access to the draft for reading.
func (s *Session) View(fn func(d *draft.Draft)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.draft)
}

// Begin marks action as running. A second Begin of the same action before the
// returned release is called fails with a conflict. A submit runs alone: it is
// refused while any action is running, and every action is refused while it runs.
func (s *Session) Begin(action string) (release func(), err error) {
	s.guardMu.Lock()
	defer s.guardMu.Unlock()
	if _, busy := s.inFlight[action]; busy {
		return nil, domain.NewConflictError(MsgActionInProgress)
	}
	if _, submitting := s.inFlight[actionSubmit]; submitting {
		return nil, domain.NewConflictError(MsgSubmissionInProgress)
	}
	if action == actionSubmit && len(s.inFlight) > 0 {
		return nil, domain.NewConflictError(MsgActionInProgress)
	}
	s.inFlight[action] = struct{}{}
	var once sync.Once
	return func() {
		once.Do(func() {
			s.guardMu.Lock()
			delete(s.inFlight, action)
			s.guardMu.Unlock()
		})
	}, nil
}

// editing reports whether the draft maps to backend reservation id.
func (s *Session) editing(reservationID int64) bool {
	var match bool
	s.View(func(d *draft.Draft) {
		rid := d.ReservationID()
		match = rid != nil && *rid == reservationID
	})
	return match
}

// SessionRegistry holds the open wizard sessions.
type SessionRegistry struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*Session
}

// NewSessionRegistry creates an empty registry.
func NewSessionRegistry() *SessionRegistry {
	return &SessionRegistry{sessions: make(map[uuid.UUID]*Session)}
}

// Open registers a session for d.
func (r *SessionRegistry) Open(d *draft.Draft) *Session {
	s := newSession(d)
	r.mu.Lock()
	r.sessions[s.ID()] = s
	r.mu.Unlock()
	return s
}

// Get returns the session id if it belongs to owner.
func (r *SessionRegistry) Get(owner string, id uuid.UUID) (*Session, error) {
	r.mu.RLock()
	s, ok := r.sessions[id]
	r.mu.RUnlock()
	if !ok {
		return nil, domain.NewNotFoundError("Brouillon", id.String())
	}
	if s.OwnerID() != owner {
		return nil, domain.NewForbiddenError("ce brouillon appartient à un autre utilisateur")
	}
	return s, nil
}

// Discard removes the session id. It returns false when absent.
func (r *SessionRegistry) Discard(id uuid.UUID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[id]; !ok {
		return false
	}
	delete(r.sessions, id)
	return true
}

// DiscardWhere removes every session matching match and returns how many were removed.
func (r *SessionRegistry) DiscardWhere(match func(s *Session) bool) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for id, s := range r.sessions {
		if match(s) {
			delete(r.sessions, id)
			n++
		}
	}
	return n
}

// Count returns the number of open sessions.
func (r *SessionRegistry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
