package memory

import (
	"sync"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// conversation is the state held for one user.
type conversation struct {
	mu     sync.Mutex // guards the fields below
	system *Message
	log    []Message
}

// turnLock serializes the turns of one user. It lives outside the LRU so
// that eviction never releases it. conv pins the conversation the holder
// works on until the lock is released.
type turnLock struct {
	mu   sync.Mutex
	refs int
	conv *conversation
}

// Store owns every user's bounded conversation log.
// Conversations are created lazily and dropped after IdleTTL without activity.
type Store struct {
	mu         sync.Mutex // guards cache and turns
	cache      *expirable.LRU[string, *conversation]
	turns      map[string]*turnLock
	maxHistory int
}

// New creates a Store, filling unset Config fields with defaults.
func New(cfg Config) *Store {
	if cfg.MaxHistory <= 0 {
		cfg.MaxHistory = DefaultMaxHistory
	}
	if cfg.MaxUsers <= 0 {
		cfg.MaxUsers = DefaultMaxUsers
	}
	if cfg.IdleTTL <= 0 {
		cfg.IdleTTL = DefaultIdleTTL
	}
	return &Store{
		cache:      expirable.NewLRU[string, *conversation](cfg.MaxUsers, nil, cfg.IdleTTL),
		turns:      make(map[string]*turnLock),
		maxHistory: cfg.MaxHistory,
	}
}

// touch returns the user's conversation, creating it when missing, and
// refreshes its idle timer.
func (s *Store) touch(userID string) *conversation {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.touchLocked(userID)
}

func (s *Store) touchLocked(userID string) *conversation {
	c, ok := s.cache.Get(userID)
	if !ok {
		c = s.pinned(userID)
	}
	if c == nil {
		c = &conversation{}
	}
	s.cache.Add(userID, c)
	return c
}

func (s *Store) peek(userID string) (*conversation, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c, ok := s.cache.Peek(userID); ok {
		return c, true
	}
	c := s.pinned(userID)
	return c, c != nil
}

// pinned returns the conversation held by a running turn. Callers hold s.mu.
func (s *Store) pinned(userID string) *conversation {
	if tl, ok := s.turns[userID]; ok {
		return tl.conv
	}
	return nil
}

// Lock serializes turns for userID. The returned func releases the lock.
// While it is held, the user's conversation survives TTL and capacity
// eviction, and Evict waits for it.
func (s *Store) Lock(userID string) (unlock func()) {
	s.mu.Lock()
	tl, ok := s.turns[userID]
	if !ok {
		tl = &turnLock{}
		s.turns[userID] = tl
	}
	tl.refs++
	s.mu.Unlock()

	tl.mu.Lock()

	s.mu.Lock()
	tl.conv = s.touchLocked(userID)
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			tl.conv = nil
			tl.refs--
			if tl.refs == 0 {
				delete(s.turns, userID)
			}
			s.mu.Unlock()
			tl.mu.Unlock()
		})
	}
}

// Append adds msg to the user's log and drops the oldest entries beyond MaxHistory.
// System messages replace the system slot instead, which does not count toward the cap.
func (s *Store) Append(userID string, msg Message) {
	if msg.Role == RoleSystem {
		s.SetSystem(userID, msg.Content)
		return
	}

	c := s.touch(userID)
	c.mu.Lock()
	defer c.mu.Unlock()

	c.log = append(c.log, msg)
	if over := len(c.log) - s.maxHistory; over > 0 {
		trimmed := make([]Message, s.maxHistory)
		copy(trimmed, c.log[over:])
		c.log = trimmed
	}
}

// SetSystem stores the user's current system instruction.
func (s *Store) SetSystem(userID, content string) {
	c := s.touch(userID)
	c.mu.Lock()
	defer c.mu.Unlock()
	c.system = &Message{Role: RoleSystem, Content: content}
}

// Get returns a copy of the user's log, oldest first. It is empty for unknown users.
func (s *Store) Get(userID string) []Message {
	c, ok := s.peek(userID)
	if !ok {
		return []Message{}
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]Message, len(c.log))
	copy(out, c.log)
	return out
}

// Evict forgets the user's conversation. It waits for a running turn of
// that user to finish, so the turn's log is never split.
func (s *Store) Evict(userID string) {
	unlock := s.Lock(userID)
	defer unlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.turns[userID].conv = nil
	s.cache.Remove(userID)
}

// Len returns the number of conversations currently held.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cache.Len()
}

// Stats describes the user's conversation and the store occupancy.
func (s *Store) Stats(userID string) Stats {
	st := Stats{UserID: userID, MaxHistory: s.maxHistory, Conversations: s.Len()}
	c, ok := s.peek(userID)
	if !ok {
		return st
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	st.Messages = len(c.log)
	st.HasSystem = c.system != nil
	return st
}

// Transcript returns the system instruction, when set, followed by the log.
func (s *Store) Transcript(userID string) []Message {
	c, ok := s.peek(userID)
	if !ok {
		return []Message{}
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]Message, 0, len(c.log)+1)
	if c.system != nil {
		out = append(out, *c.system)
	}
	return append(out, c.log...)
}
