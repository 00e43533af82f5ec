// Package keylock serializes work per key while unrelated keys proceed in parallel.
package keylock

import (
	"slices"
	"sync"
)

type entry struct {
	mu   sync.Mutex
	refs int
}

// KeyLock - a set of mutexes created on demand and dropped once nobody holds or waits for them.
type KeyLock struct {
	mu      sync.Mutex
	entries map[string]*entry
}

func New() *KeyLock {
	return &KeyLock{
		entries: make(map[string]*entry),
	}
}

// Lock - blocks until the key is free and returns the function releasing it.
func (that *KeyLock) Lock(key string) func() {
	that.mu.Lock()
	e, ok := that.entries[key]
	if !ok {
		e = &entry{}
		that.entries[key] = e
	}
	e.refs++
	that.mu.Unlock()

	e.mu.Lock()

	return func() {
		e.mu.Unlock()

		that.mu.Lock()
		e.refs--
		if e.refs == 0 {
			delete(that.entries, key)
		}
		that.mu.Unlock()
	}
}

// LockAll - locks every distinct key in sorted order, so callers locking overlapping sets never deadlock.
func (that *KeyLock) LockAll(keys ...string) func() {
	sorted := slices.Clone(keys)
	slices.Sort(sorted)
	sorted = slices.Compact(sorted)

	unlocks := make([]func(), 0, len(sorted))
	for _, key := range sorted {
		unlocks = append(unlocks, that.Lock(key))
	}

	return func() {
		for i := len(unlocks) - 1; i >= 0; i-- {
			unlocks[i]()
		}
	}
}

// Len - number of keys currently held or awaited.
func (that *KeyLock) Len() int {
	that.mu.Lock()
	defer that.mu.Unlock()

	return len(that.entries)
}
