// Bienestar - Student Wellbeing Questionnaire Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bienestar

package sync

import "sync"

// Store holds the state of one view. Values are treated as immutable:
// update functions must return a new value instead of modifying their
// argument in place, since snapshots handed out earlier may share memory.
type Store[T any] struct {
	mu      sync.RWMutex
	value   T
	version uint64
}

// NewStore creates a store holding initial.
func NewStore[T any](initial T) *Store[T] {
	return &Store[T]{value: initial}
}

// Snapshot returns the current value.
func (s *Store[T]) Snapshot() T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.value
}

// Version returns a counter that increases on every change.
func (s *Store[T]) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// Update replaces the value with fn(current) and returns the new version.
func (s *Store[T]) Update(fn func(T) T) uint64 {
	_, v := s.swap(fn)
	return v
}

// Replace sets the value and returns the new version.
func (s *Store[T]) Replace(value T) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.value = value
	s.version++
	return s.version
}

// swap applies fn and returns the previous value with the new version.
func (s *Store[T]) swap(fn func(T) T) (prev T, version uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev = s.value
	s.value = fn(s.value)
	s.version++
	return prev, s.version
}

// restoreIf puts prev back only if the store is still at version.
func (s *Store[T]) restoreIf(prev T, version uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.version != version {
		return false
	}
	s.value = prev
	s.version++
	return true
}
