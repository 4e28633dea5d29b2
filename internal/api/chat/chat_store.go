package chat

import (
	"sync"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/Msrrhw/JalanJalan-ai/internal/types"
)

// Session pairs a user's conversation state with the lock that serializes
// access to it. Every turn for a given user identifier must run with the
// session lock held so the stage transitions exactly once per trigger.
type Session struct {
	sync.Mutex
	State *types.ConversationState
}

// Store holds one session per user identifier. Entries are created lazily on
// first contact and evicted after SessionTTL of inactivity, so the map does
// not grow without bound under sustained traffic.
type Store struct {
	mu       sync.Mutex
	sessions *cache.Cache
	ttl      time.Duration
}

func NewStore(sessionTTL, cleanupInterval time.Duration) *Store {
	return &Store{
		sessions: cache.New(sessionTTL, cleanupInterval),
		ttl:      sessionTTL,
	}
}

func newConversationState() *types.ConversationState {
	now := time.Now()
	return &types.ConversationState{
		History:     []types.ConversationTurn{},
		Stage:       types.StageIdle,
		Preferences: types.TripPreferences{Interests: []string{}},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// Acquire returns the session for userID, creating it if this is the user's
// first contact, and refreshes its expiry.
func (s *Store) Acquire(userID string) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	if entry, found := s.sessions.Get(userID); found {
		sess := entry.(*Session)
		s.sessions.Set(userID, sess, s.ttl)
		return sess
	}

	sess := &Session{State: newConversationState()}
	s.sessions.Set(userID, sess, s.ttl)
	return sess
}

// Len reports the number of stored sessions. Expired entries are counted
// until the next cleanup sweep removes them.
func (s *Store) Len() int {
	return s.sessions.ItemCount()
}
