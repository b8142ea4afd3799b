package clock

import (
	"sync"
	"time"
)

// Mock is a manually advanced Clock. Callbacks run synchronously on the
// goroutine calling Add, in firing order.
type Mock struct {
	mu     sync.Mutex
	now    time.Time
	timers []*mockTimer
}

func NewMock(start time.Time) *Mock {
	return &Mock{now: start}
}

type mockTimer struct {
	mock   *Mock
	next   time.Time
	period time.Duration
	fn     func()
	active bool
}

func (t *mockTimer) Stop() bool {
	t.mock.mu.Lock()
	defer t.mock.mu.Unlock()
	was := t.active
	t.active = false
	return was
}

func (m *Mock) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

func (m *Mock) AfterFunc(d time.Duration, f func()) Timer {
	return m.schedule(d, 0, f)
}

func (m *Mock) Every(d time.Duration, f func()) Timer {
	return m.schedule(d, d, f)
}

func (m *Mock) schedule(d, period time.Duration, f func()) *mockTimer {
	m.mu.Lock()
	defer m.mu.Unlock()
	t := &mockTimer{mock: m, next: m.now.Add(d), period: period, fn: f, active: true}
	m.timers = append(m.timers, t)
	return t
}

// Add advances the clock by d, firing every timer that comes due.
func (m *Mock) Add(d time.Duration) {
	m.mu.Lock()
	target := m.now.Add(d)
	m.mu.Unlock()

	for {
		m.mu.Lock()
		t := m.nextDue(target)
		if t == nil {
			m.now = target
			m.prune()
			m.mu.Unlock()
			return
		}
		m.now = t.next
		if t.period > 0 {
			t.next = t.next.Add(t.period)
		} else {
			t.active = false
		}
		fn := t.fn
		m.mu.Unlock()

		fn()
	}
}

// Pending returns the number of timers that may still fire.
func (m *Mock) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, t := range m.timers {
		if t.active {
			n++
		}
	}
	return n
}

func (m *Mock) nextDue(target time.Time) *mockTimer {
	var due *mockTimer
	for _, t := range m.timers {
		if !t.active || t.next.After(target) {
			continue
		}
		if due == nil || t.next.Before(due.next) {
			due = t
		}
	}
	return due
}

func (m *Mock) prune() {
	kept := m.timers[:0]
	for _, t := range m.timers {
		if t.active {
			kept = append(kept, t)
		}
	}
	m.timers = kept
}
