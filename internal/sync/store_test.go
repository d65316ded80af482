// Bienestar - Student Wellbeing Questionnaire Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bienestar

package sync

import (
	"sync"
	"testing"
)

func TestStore_Versions(t *testing.T) {
	t.Parallel()
	s := NewStore([]string{"a"})

	if v := s.Version(); v != 0 {
		t.Fatalf("initial Version() = %d, want 0", v)
	}
	v1 := s.Update(func(in []string) []string {
		out := make([]string, 0, len(in)+1)
		out = append(out, "b")
		return append(out, in...)
	})
	v2 := s.Replace([]string{"c"})
	if v1 != 1 || v2 != 2 {
		t.Errorf("versions = %d, %d, want 1, 2", v1, v2)
	}
	if got := s.Snapshot(); len(got) != 1 || got[0] != "c" {
		t.Errorf("Snapshot() = %v", got)
	}
}

func TestStore_RestoreIf(t *testing.T) {
	t.Parallel()
	s := NewStore(1)

	prev, v := s.swap(func(n int) int { return n * 10 })
	if !s.restoreIf(prev, v) {
		t.Fatal("restoreIf() = false on unchanged store")
	}
	if got := s.Snapshot(); got != 1 {
		t.Errorf("Snapshot() = %d, want 1", got)
	}

	prev, v = s.swap(func(n int) int { return n + 1 })
	s.Replace(50)
	if s.restoreIf(prev, v) {
		t.Error("restoreIf() = true after a concurrent change")
	}
	if got := s.Snapshot(); got != 50 {
		t.Errorf("Snapshot() = %d, want 50", got)
	}
}

func TestStore_ConcurrentUpdates(t *testing.T) {
	t.Parallel()
	s := NewStore(0)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Update(func(n int) int { return n + 1 })
		}()
	}
	wg.Wait()

	if got := s.Snapshot(); got != 50 {
		t.Errorf("Snapshot() = %d, want 50", got)
	}
}

func TestScope_CloseIsIdempotent(t *testing.T) {
	t.Parallel()
	scope := NewScope("test")

	if !scope.Apply(func() {}) {
		t.Fatal("Apply() = false on open scope")
	}
	scope.Close()
	scope.Close()

	if !scope.Closed() {
		t.Error("Closed() = false after Close")
	}
	if scope.Context().Err() == nil {
		t.Error("Context() not cancelled after Close")
	}
	ran := false
	if scope.Apply(func() { ran = true }) || ran {
		t.Error("Apply() ran after Close")
	}
}
