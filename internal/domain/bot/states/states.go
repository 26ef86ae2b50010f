// Package states contains the per-conversation state machine storage
package states

import "sync"

// State is the pending conversation state: what free-text input
// the bot expects next from a given user in a given chat.
type State int

const (
	// Idle means no input is expected (no record in the store)
	Idle State = iota
	// AwaitingMovieName expects a movie title for name search
	AwaitingMovieName
	// AwaitingGenre expects a genre for genre search
	AwaitingGenre
	// AwaitingRating expects a minimum rating value
	AwaitingRating
	// AwaitingHistoryDate expects a date filter for the history flow
	AwaitingHistoryDate
)

// String returns a human-readable state name for logging
func (s State) String() string {
	switch s {
	case AwaitingMovieName:
		return "awaiting_movie_name"
	case AwaitingGenre:
		return "awaiting_genre"
	case AwaitingRating:
		return "awaiting_rating"
	case AwaitingHistoryDate:
		return "awaiting_history_date"
	default:
		return "idle"
	}
}

// Key identifies one conversation. State is scoped per (user, chat),
// not globally per user.
type Key struct {
	UserID int64
	ChatID int64
}

// Store is an in-memory keyed state store with atomic per-key operations.
// It is the only cross-request shared state besides the database.
type Store struct {
	mu     sync.RWMutex
	states map[Key]State
}

// NewStore creates an empty state store
func NewStore() *Store {
	return &Store{
		states: make(map[Key]State),
	}
}

// Get returns the pending state for the conversation, Idle when none
func (s *Store) Get(key Key) State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.states[key]
}

// Set overwrites the pending state for the conversation.
// The last command wins; outstanding prompts are not queued.
func (s *Store) Set(key Key, state State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if state == Idle {
		delete(s.states, key)
		return
	}
	s.states[key] = state
}

// Clear removes any pending state for the conversation
func (s *Store) Clear(key Key) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.states, key)
}
