// Package session keeps per-conversation state: the active collection
// and the ordered chat turns. State is in-process only and is passed
// explicitly to whoever needs it; there is no ambient global session.
package session

import (
	"sync"

	"github.com/google/uuid"

	"sitechat/internal/domain"
)

// Session is one user conversation over one indexed site.
type Session struct {
	mu         sync.RWMutex
	id         string
	collection string
	siteURL    string
	siteTitle  string
	turns      []domain.Turn
}

// New creates an empty session with a fresh id.
func New() *Session {
	return &Session{id: uuid.NewString()}
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// SetSite records the currently indexed site. Conversation turns are
// kept; only the retrieval target changes.
func (s *Session) SetSite(collection, url, title string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.collection = collection
	s.siteURL = url
	s.siteTitle = title
}

// Collection returns the active collection name, empty before any
// site was indexed.
func (s *Session) Collection() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.collection
}

// SiteURL returns the URL of the active site.
func (s *Session) SiteURL() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.siteURL
}

// SiteTitle returns the title of the active site.
func (s *Session) SiteTitle() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.siteTitle
}

// Indexed reports whether a site has been indexed in this session.
func (s *Session) Indexed() bool {
	return s.Collection() != ""
}

// Append adds one turn to the conversation.
func (s *Session) Append(role, content string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.turns = append(s.turns, domain.Turn{Role: role, Content: content})
}

// Turns returns a copy of the full conversation in order.
func (s *Session) Turns() []domain.Turn {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Turn, len(s.turns))
	copy(out, s.turns)
	return out
}

// Reset clears the conversation, keeping the indexed site.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.turns = nil
}
