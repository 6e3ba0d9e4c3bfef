// Package util provides small shared helpers with no domain knowledge.
package util

import "sync"

// KeyMutex is an arena of per-key mutexes. Locks for different keys never
// contend, and entries are reclaimed once the last holder releases them, so
// the arena stays proportional to the number of keys currently locked rather
// than ever seen.
type KeyMutex struct {
	mu    sync.Mutex
	locks map[string]*keyLock
}

type keyLock struct {
	mu   sync.Mutex
	refs int
}

// NewKeyMutex creates an empty arena.
func NewKeyMutex() *KeyMutex {
	return &KeyMutex{
		locks: make(map[string]*keyLock),
	}
}

// Lock acquires the mutex for key and returns the matching unlock function.
func (km *KeyMutex) Lock(key string) (unlock func()) {
	km.mu.Lock()
	lock, ok := km.locks[key]
	if !ok {
		lock = &keyLock{}
		km.locks[key] = lock
	}
	lock.refs++
	km.mu.Unlock()

	lock.mu.Lock()

	return func() {
		lock.mu.Unlock()

		km.mu.Lock()
		lock.refs--
		if lock.refs == 0 {
			delete(km.locks, key)
		}
		km.mu.Unlock()
	}
}
