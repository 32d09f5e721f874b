// PokeTeam - Team Composition Analytics and Core Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/poketeam

package services

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/poketeam/internal/cache"
)

type countingSweeper struct {
	calls   atomic.Int32
	removed int
}

func (s *countingSweeper) CleanupExpired() int {
	s.calls.Add(1)
	return s.removed
}

func TestCacheJanitor_Sweep(t *testing.T) {
	datasets := &countingSweeper{removed: 2}
	cores := &countingSweeper{removed: 3}
	janitor := NewCacheJanitorService(map[string]Sweeper{
		"datasets": datasets,
		"cores":    cores,
	}, time.Hour, zerolog.Nop())

	if got := janitor.Sweep(); got != 5 {
		t.Errorf("Sweep() = %d, want 5", got)
	}
	if datasets.calls.Load() != 1 || cores.calls.Load() != 1 {
		t.Errorf("calls = %d/%d, want 1/1", datasets.calls.Load(), cores.calls.Load())
	}
}

func TestCacheJanitor_SweepsRealCache(t *testing.T) {
	lru := cache.NewLRU[int](4, time.Nanosecond)
	lru.Add("a", 1)
	lru.Add("b", 2)
	time.Sleep(time.Millisecond)

	janitor := NewCacheJanitorService(map[string]Sweeper{"lru": lru}, time.Hour, zerolog.Nop())
	if got := janitor.Sweep(); got != 2 {
		t.Errorf("Sweep() = %d, want 2 expired entries", got)
	}
	if lru.Len() != 0 {
		t.Errorf("Len() = %d after sweep, want 0", lru.Len())
	}
}

func TestCacheJanitor_Serve(t *testing.T) {
	sweeper := &countingSweeper{}
	janitor := NewCacheJanitorService(map[string]Sweeper{"cores": sweeper}, 5*time.Millisecond, zerolog.Nop())

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	if err := janitor.Serve(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Serve() error = %v, want context.DeadlineExceeded", err)
	}
	if sweeper.calls.Load() < 2 {
		t.Errorf("swept %d times in 100ms at a 5ms interval", sweeper.calls.Load())
	}
}

func TestCacheJanitor_Defaults(t *testing.T) {
	janitor := NewCacheJanitorService(nil, 0, zerolog.Nop())
	if janitor.interval != time.Minute {
		t.Errorf("interval = %v, want 1m", janitor.interval)
	}
	if janitor.Sweep() != 0 {
		t.Error("Sweep() with no targets removed entries")
	}
	if janitor.String() != "cache-janitor-service" {
		t.Errorf("String() = %q", janitor.String())
	}
}
