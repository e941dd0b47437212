package service

import (
	"sync"
	"time"

	"offplanbot/internal/metrics"
	"offplanbot/internal/model"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Step is the position in the guided flow
type Step int

const (
	StepBudget Step = iota
	StepDeveloper
	StepSearching
)

func (s Step) String() string {
	switch s {
	case StepBudget:
		return "budget"
	case StepDeveloper:
		return "developer"
	case StepSearching:
		return "searching"
	default:
		return "unknown"
	}
}

// Session is one conversation. All fields are guarded by mu and only change
// through the transition methods of ChatService.
type Session struct {
	ID        string
	CreatedAt time.Time

	mu              sync.Mutex
	step            Step
	slots           model.Slots
	bedroomOverride *int
	messages        []model.Message
	nextID          int64
	generation      uint64 // bumped on every reset
	inFlight        bool
	lastActive      time.Time
}

// NewSession creates an empty session at the budget step
func NewSession(now time.Time) *Session {
	return &Session{
		ID:         uuid.NewString(),
		CreatedAt:  now,
		step:       StepBudget,
		lastActive: now,
	}
}

// Snapshot returns a copy of the session suitable for serialization
func (s *Session) Snapshot() model.SessionResponse {
	s.mu.Lock()
	defer s.mu.Unlock()

	resp := model.SessionResponse{
		SessionID: s.ID,
		Step:      s.step.String(),
		Slots:     s.slots.Clone(),
		Messages:  append([]model.Message(nil), s.messages...),
		CreatedAt: s.CreatedAt,
	}
	if s.bedroomOverride != nil {
		override := *s.bedroomOverride
		resp.BedroomOverride = &override
	}
	return resp
}

// Step returns the current guided step
func (s *Session) Step() Step {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.step
}

// Slots returns a copy of the accumulated slots
func (s *Session) Slots() model.Slots {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.slots.Clone()
}

// BedroomOverride returns the captured bedroom override, if any
func (s *Session) BedroomOverride() *int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.bedroomOverride == nil {
		return nil
	}
	v := *s.bedroomOverride
	return &v
}

// Messages returns the message log in order
func (s *Session) Messages() []model.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Message(nil), s.messages...)
}

// Generation returns the reset counter
func (s *Session) Generation() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generation
}

// Searching reports whether a backend search is outstanding
func (s *Session) Searching() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inFlight
}

func (s *Session) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastActive
}

// append stamps and stores a message. Caller holds mu.
func (s *Session) append(msg model.Message, now time.Time) model.Message {
	s.nextID++
	msg.ID = s.nextID
	msg.CreatedAt = now
	s.messages = append(s.messages, msg)
	s.lastActive = now
	return msg
}

// reset clears criteria and returns to the budget step. Caller holds mu.
func (s *Session) reset() {
	s.slots = model.Slots{}
	s.bedroomOverride = nil
	s.step = StepBudget
	s.generation++
	s.inFlight = false
}

// Registry keeps live sessions in memory, keyed by id
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{sessions: make(map[string]*Session)}
}

// Add stores a session
func (r *Registry) Add(s *Session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.sessions[s.ID]; !exists {
		metrics.ChatSessionsActive.Inc()
	}
	r.sessions[s.ID] = s
}

// Get looks a session up by id
func (r *Registry) Get(id string) (*Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

// Delete removes a session
func (r *Registry) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[id]; !ok {
		return ErrSessionNotFound
	}
	delete(r.sessions, id)
	metrics.ChatSessionsActive.Dec()
	return nil
}

// Len returns the number of live sessions
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// Prune drops sessions idle for longer than ttl and returns how many were removed.
// Sessions with a search in flight are kept.
func (r *Registry) Prune(now time.Time, ttl time.Duration) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for id, s := range r.sessions {
		if s.Searching() || now.Sub(s.idleSince()) <= ttl {
			continue
		}
		delete(r.sessions, id)
		removed++
	}
	if removed > 0 {
		metrics.ChatSessionsActive.Sub(float64(removed))
		logrus.WithFields(logrus.Fields{
			"removed":   removed,
			"remaining": len(r.sessions),
		}).Info("pruned idle chat sessions")
	}
	return removed
}
