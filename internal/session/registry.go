// Package session holds the in-memory registry of live voice trading
// sessions. Sessions exist only for the lifetime of the process; there is
// deliberately no persistence behind this map.
package session

import (
	"log/slog"
	"sync"
	"time"

	"voicedesk/internal/domain"
	"voicedesk/internal/extract"
)

// Registry owns the mapping from session id to session state. All mutation
// happens under the registry mutex, so a transcript replacement (which
// replays the full transcript) and a market-price attach can never interleave
// on the same record.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*domain.Session
	logger   *slog.Logger
}

// NewRegistry creates an empty session registry.
func NewRegistry(logger *slog.Logger) *Registry {
	return &Registry{
		sessions: make(map[string]*domain.Session),
		logger:   logger,
	}
}

// Create registers a new active session with an empty transcript and order
// record. An existing session with the same id is replaced.
func (r *Registry) Create(id, streamURL string) domain.Session {
	r.mu.Lock()
	defer r.mu.Unlock()

	s := &domain.Session{
		ID:         id,
		Status:     domain.StatusActive,
		StreamURL:  streamURL,
		Transcript: []domain.Turn{},
		StartedAt:  time.Now(),
	}
	r.sessions[id] = s

	r.logger.Info("session created", "session_id", id)
	return *s
}

// Get returns a snapshot of the session, or false if it is unknown.
func (r *Registry) Get(id string) (domain.Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.sessions[id]
	if !ok {
		return domain.Session{}, false
	}
	return snapshot(s), true
}

// ReplaceTranscript swaps in the latest transcript and re-derives the order
// record by full replay. A webhook can arrive before the start call has
// registered the session (or after a restart), so an unknown id is upserted
// rather than dropped. The previously attached market price survives the
// replay; text extraction never writes that field.
func (r *Registry) ReplaceTranscript(id string, transcript []domain.Turn) domain.Session {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[id]
	if !ok {
		s = &domain.Session{
			ID:        id,
			Status:    domain.StatusActive,
			StartedAt: time.Now(),
		}
		r.sessions[id] = s
	}

	s.Transcript = append([]domain.Turn(nil), transcript...)

	marketPrice := s.Order.MarketPrice
	s.Order = extract.Reduce(s.Transcript)
	s.Order.MarketPrice = marketPrice

	r.logger.Debug("transcript replayed",
		"session_id", id,
		"turns", len(s.Transcript),
		"step", extract.CurrentStep(s.Order),
	)
	return snapshot(s)
}

// AttachMarketPrice writes the looked-up market price, but only when the
// field is still absent: the lookup is the one suspending operation in the
// system, and a faster-arriving event may have filled the field meanwhile.
// Reports whether the write happened.
func (r *Registry) AttachMarketPrice(id, price string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[id]
	if !ok || s.Order.MarketPrice != "" {
		return false
	}
	s.Order.MarketPrice = price

	r.logger.Debug("market price attached", "session_id", id, "price", price)
	return true
}

// Remove drops the session from the registry.
func (r *Registry) Remove(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.sessions, id)
	r.logger.Info("session removed", "session_id", id)
}

// snapshot copies a session so callers never share the registry's backing
// slices. The transcript copy is never nil; status responses marshal it as
// [] rather than null. Caller must hold at least a read lock.
func snapshot(s *domain.Session) domain.Session {
	out := *s
	out.Transcript = make([]domain.Turn, len(s.Transcript))
	copy(out.Transcript, s.Transcript)
	return out
}
