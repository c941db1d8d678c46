package auth

import (
	"sync"
	"time"
)

// RevocationList remembers signed-out token ids until the tokens would have
// expired on their own.
type RevocationList struct {
	mu      sync.Mutex
	revoked map[string]time.Time
	now     func() time.Time
}

func NewRevocationList() *RevocationList {
	return &RevocationList{revoked: make(map[string]time.Time), now: time.Now}
}

func (l *RevocationList) Revoke(tokenID string, until time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.purge()
	l.revoked[tokenID] = until
}

func (l *RevocationList) IsRevoked(tokenID string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	until, ok := l.revoked[tokenID]
	if !ok {
		return false
	}
	if !l.now().Before(until) {
		delete(l.revoked, tokenID)
		return false
	}
	return true
}

func (l *RevocationList) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.revoked)
}

func (l *RevocationList) purge() {
	now := l.now()
	for id, until := range l.revoked {
		if !now.Before(until) {
			delete(l.revoked, id)
		}
	}
}
