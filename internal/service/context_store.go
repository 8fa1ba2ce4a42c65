package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// ContextWindow keeps the last few utterances of a conversation, oldest first
type ContextWindow struct {
	size  int
	turns []string
}

// NewContextWindow creates an empty window holding at most size turns
func NewContextWindow(size int) *ContextWindow {
	if size < 1 {
		size = 1
	}
	return &ContextWindow{size: size, turns: make([]string, 0, size)}
}

// Push appends an utterance, evicting the oldest when full
func (w *ContextWindow) Push(utterance string) {
	if len(w.turns) == w.size {
		copy(w.turns, w.turns[1:])
		w.turns = w.turns[:w.size-1]
	}
	w.turns = append(w.turns, utterance)
}

// Turns returns a copy of the held utterances
func (w *ContextWindow) Turns() []string {
	out := make([]string, len(w.turns))
	copy(out, w.turns)
	return out
}

// Len returns the number of held utterances
func (w *ContextWindow) Len() int {
	return len(w.turns)
}

// ContextStore keeps one window per session. Exchange returns the turns seen
// before utterance and records utterance, as one atomic step.
type ContextStore interface {
	Exchange(ctx context.Context, sessionID, utterance string) ([]string, error)
	Reset(ctx context.Context, sessionID string) error
}

type memoryEntry struct {
	window  *ContextWindow
	touched time.Time
}

// DefaultMaxSessions caps a MemoryContextStore unless WithMaxSessions says otherwise
const DefaultMaxSessions = 10000

// MemoryContextStore keeps windows in process memory. Sessions idle for
// longer than ttl start over and are swept at most once per ttl. When the
// store is full the least recently touched session is evicted.
type MemoryContextStore struct {
	size        int
	ttl         time.Duration
	maxSessions int
	now         func() time.Time

	mu        sync.Mutex
	sessions  map[string]*memoryEntry
	lastSweep time.Time
}

// NewMemoryContextStore creates an in-process store. A zero ttl never expires.
func NewMemoryContextStore(size int, ttl time.Duration) *MemoryContextStore {
	return &MemoryContextStore{
		size:        size,
		ttl:         ttl,
		maxSessions: DefaultMaxSessions,
		now:         time.Now,
		sessions:    make(map[string]*memoryEntry),
	}
}

// WithMaxSessions sets the session cap. Values below 1 remove the cap.
func (s *MemoryContextStore) WithMaxSessions(n int) *MemoryContextStore {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.maxSessions = n
	return s
}

// Len returns the number of sessions currently held
func (s *MemoryContextStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Exchange implements ContextStore
func (s *MemoryContextStore) Exchange(ctx context.Context, sessionID, utterance string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.sweep(now)

	entry, ok := s.sessions[sessionID]
	if ok && s.expired(entry, now) {
		delete(s.sessions, sessionID)
		ok = false
	}
	if !ok {
		if s.maxSessions > 0 {
			for len(s.sessions) >= s.maxSessions {
				s.evictOldest()
			}
		}
		entry = &memoryEntry{window: NewContextWindow(s.size)}
		s.sessions[sessionID] = entry
	}

	history := entry.window.Turns()
	entry.window.Push(utterance)
	entry.touched = now
	return history, nil
}

func (s *MemoryContextStore) expired(entry *memoryEntry, now time.Time) bool {
	return s.ttl > 0 && now.Sub(entry.touched) > s.ttl
}

// sweep drops expired sessions. Caller holds mu.
func (s *MemoryContextStore) sweep(now time.Time) {
	if s.ttl <= 0 {
		return
	}
	if s.lastSweep.IsZero() {
		s.lastSweep = now
		return
	}
	if now.Sub(s.lastSweep) < s.ttl {
		return
	}
	for id, entry := range s.sessions {
		if s.expired(entry, now) {
			delete(s.sessions, id)
		}
	}
	s.lastSweep = now
}

// evictOldest removes the least recently touched session. Caller holds mu.
func (s *MemoryContextStore) evictOldest() {
	var (
		oldestID string
		oldest   time.Time
		found    bool
	)
	for id, entry := range s.sessions {
		if !found || entry.touched.Before(oldest) {
			oldestID, oldest, found = id, entry.touched, true
		}
	}
	if !found {
		return
	}
	delete(s.sessions, oldestID)
}

// Reset implements ContextStore
func (s *MemoryContextStore) Reset(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
	return nil
}

// RedisContextStore keeps each window in a Redis list that expires after ttl
type RedisContextStore struct {
	client *redis.Client
	prefix string
	size   int
	ttl    time.Duration
}

// NewRedisContextStore creates a store on an existing client
func NewRedisContextStore(client *redis.Client, prefix string, size int, ttl time.Duration) *RedisContextStore {
	if size < 1 {
		size = 1
	}
	return &RedisContextStore{client: client, prefix: prefix, size: size, ttl: ttl}
}

func (s *RedisContextStore) key(sessionID string) string {
	return s.prefix + sessionID
}

// Exchange implements ContextStore with a MULTI/EXEC transaction
func (s *RedisContextStore) Exchange(ctx context.Context, sessionID, utterance string) ([]string, error) {
	key := s.key(sessionID)

	var history *redis.StringSliceCmd
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		history = pipe.LRange(ctx, key, 0, -1)
		pipe.RPush(ctx, key, utterance)
		pipe.LTrim(ctx, key, int64(-s.size), -1)
		if s.ttl > 0 {
			pipe.Expire(ctx, key, s.ttl)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update context for session %s: %w", sessionID, err)
	}
	return history.Val(), nil
}

// Reset implements ContextStore
func (s *RedisContextStore) Reset(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, s.key(sessionID)).Err(); err != nil {
		return fmt.Errorf("failed to reset context for session %s: %w", sessionID, err)
	}
	return nil
}
