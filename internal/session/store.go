// Package session holds unlocked signing sessions in memory. A session
// pairs a decrypted private key with an expiry; nothing here is ever
// written to disk.
package session

import (
	"sync"
	"time"
)

// Session is an unlocked signing grant for one user.
type Session struct {
	PrivateKey string
	ExpiresAt  time.Time
}

// Store keeps sessions keyed by user ID. Updates replace the whole
// record, so a re-authorization never mixes an old key with a new expiry.
type Store interface {
	Get(userID int64) (Session, bool)
	Put(userID int64, s Session)
	Delete(userID int64)
}

// MemoryStore is the in-process Store implementation.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[int64]Session
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[int64]Session)}
}

func (s *MemoryStore) Get(userID int64) (Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[userID]
	return sess, ok
}

func (s *MemoryStore) Put(userID int64, sess Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[userID] = sess
}

func (s *MemoryStore) Delete(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, userID)
}
