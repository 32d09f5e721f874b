// PokeTeam - Team Composition Analytics and Core Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/poketeam

package supervisor

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
)

var errMockFailure = errors.New("mock failure")

// MockService is a suture.Service that records its starts and stops and
// can fail on demand.
type MockService struct {
	name string

	starts atomic.Int32
	stops  atomic.Int32

	mu        sync.Mutex
	err       error
	failsLeft int
}

func NewMockService(name string) *MockService {
	return &MockService{name: name}
}

// SetError makes every Serve call return err immediately.
func (m *MockService) SetError(err error) {
	m.mu.Lock()
	m.err = err
	m.mu.Unlock()
}

// SetFailCount makes the next n Serve calls fail before the service runs
// normally.
func (m *MockService) SetFailCount(n int) {
	m.mu.Lock()
	m.failsLeft = n
	m.mu.Unlock()
}

func (m *MockService) Serve(ctx context.Context) error {
	m.starts.Add(1)

	m.mu.Lock()
	err := m.err
	fail := m.failsLeft > 0
	if fail {
		m.failsLeft--
	}
	m.mu.Unlock()

	switch {
	case err != nil:
		return err
	case fail:
		return errMockFailure
	}

	<-ctx.Done()
	m.stops.Add(1)
	return ctx.Err()
}

func (m *MockService) StartCount() int { return int(m.starts.Load()) }

func (m *MockService) StopCount() int { return int(m.stops.Load()) }

func (m *MockService) String() string { return m.name }
