package app

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/dwikikusuma/coffee-order/internal/loyalty/domain"
)

type Notifier interface {
	Notify(title, message string)
}

// Tracker guards the session loyalty state. Game timers award points from
// their own goroutines, so every access goes through the lock.
type Tracker struct {
	mu       sync.Mutex
	state    domain.State
	notifier Notifier
	log      *slog.Logger
}

func NewTracker(initial domain.State, notifier Notifier, log *slog.Logger) *Tracker {
	if log == nil {
		log = slog.Default()
	}
	if initial.Points < 0 {
		initial.Points = 0
	}
	if initial.BeverageCount < 0 {
		initial.BeverageCount = 0
	}
	return &Tracker{state: initial, notifier: notifier, log: log}
}

func (t *Tracker) RecordPurchase(quantity int) {
	t.mu.Lock()
	earned := t.state.FreeBeveragesEarned()
	t.state.RecordPurchase(quantity)
	st := t.state
	t.mu.Unlock()

	t.log.Info("purchase recorded", slog.Int("quantity", quantity), slog.Int("beverage_count", st.BeverageCount))
	// A single purchase can cross a card boundary without landing on it.
	if st.FreeBeveragesEarned() > earned && t.notifier != nil {
		t.notifier.Notify("Free beverage unlocked!", fmt.Sprintf("You have earned %d free beverages", st.FreeBeveragesEarned()))
	}
}

// AwardPoints ignores non-positive amounts.
func (t *Tracker) AwardPoints(amount int) {
	if amount <= 0 {
		return
	}
	t.mu.Lock()
	t.state.AwardPoints(amount)
	total := t.state.Points
	t.mu.Unlock()

	t.log.Info("points awarded", slog.Int("amount", amount), slog.Int("points", total))
	if t.notifier != nil {
		t.notifier.Notify(fmt.Sprintf("You earned %d points!", amount), fmt.Sprintf("Total: %d points", total))
	}
}

func (t *Tracker) State() domain.State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

func (t *Tracker) Summary() domain.Summary {
	return t.State().Summary()
}
