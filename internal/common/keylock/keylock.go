// Package keylock provides in-process mutual exclusion keyed by resource id.
package keylock

import "sync"

type entry struct {
	mu   sync.Mutex
	refs int
}

// Locker hands out one mutex per key and forgets keys nobody holds
type Locker struct {
	mu    sync.Mutex
	locks map[string]*entry
}

// New creates an empty Locker
func New() *Locker {
	return &Locker{locks: make(map[string]*entry)}
}

// Acquire locks every key in the order given and returns a func releasing
// them in reverse order. Callers must use one fixed order (player before round)
// for keys of different kinds. Duplicate keys are locked once.
func (l *Locker) Acquire(keys ...string) (release func()) {
	held := make([]string, 0, len(keys))
	seen := make(map[string]struct{}, len(keys))
	for _, key := range keys {
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		l.lock(key)
		held = append(held, key)
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			for i := len(held) - 1; i >= 0; i-- {
				l.unlock(held[i])
			}
		})
	}
}

func (l *Locker) lock(key string) {
	l.mu.Lock()
	e, ok := l.locks[key]
	if !ok {
		e = &entry{}
		l.locks[key] = e
	}
	e.refs++
	l.mu.Unlock()

	e.mu.Lock()
}

func (l *Locker) unlock(key string) {
	l.mu.Lock()
	e := l.locks[key]
	e.refs--
	if e.refs == 0 {
		delete(l.locks, key)
	}
	l.mu.Unlock()

	e.mu.Unlock()
}

// Len reports how many keys currently have holders or waiters
func (l *Locker) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}

// PlayerKey is the lock key for a player's balance
func PlayerKey(playerID string) string { return "player:" + playerID }

// RoundKey is the lock key for a round's roster
func RoundKey(roundID string) string { return "round:" + roundID }
