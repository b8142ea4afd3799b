package app

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/dwikikusuma/coffee-order/internal/order/domain"
	"github.com/dwikikusuma/coffee-order/pkg/clock"
)

const DefaultTickInterval = 4 * time.Second

// Tracker simulates preparation of the current order. A repeating timer
// advances it one stage per interval until it is ready.
type Tracker struct {
	mu       sync.Mutex
	clock    clock.Clock
	interval time.Duration
	notifier Notifier
	log      *slog.Logger

	order *domain.Order
	timer clock.Timer
	gen   uint64
}

func NewTracker(clk clock.Clock, interval time.Duration, notifier Notifier, log *slog.Logger) *Tracker {
	if interval <= 0 {
		interval = DefaultTickInterval
	}
	if log == nil {
		log = slog.Default()
	}
	return &Tracker{
		clock:    clk,
		interval: interval,
		notifier: notifier,
		log:      log,
	}
}

// Start begins tracking o, replacing and stopping any previous tracking.
func (t *Tracker) Start(o domain.Order) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.stopLocked()
	t.gen++
	gen := t.gen
	t.order = &o
	t.timer = t.clock.Every(t.interval, func() { t.tick(gen) })

	t.log.Info("order tracking started", slog.String("order_id", o.ID), slog.String("status", o.Status.String()))
}

// Tick advances the order by one stage. Ticks after the order is ready are
// no-ops.
func (t *Tracker) Tick() {
	t.mu.Lock()
	gen := t.gen
	t.mu.Unlock()
	t.tick(gen)
}

func (t *Tracker) tick(gen uint64) {
	t.mu.Lock()
	if gen != t.gen || t.order == nil {
		t.mu.Unlock()
		return
	}
	if !t.order.Advance() {
		t.mu.Unlock()
		return
	}
	o := *t.order
	if o.IsReady() {
		t.stopLocked()
	}
	t.mu.Unlock()

	t.log.Debug("order advanced", slog.String("order_id", o.ID), slog.String("status", o.Status.String()), slog.Float64("progress", o.Progress()))
	if o.IsReady() && t.notifier != nil {
		t.notifier.Notify("Your order is ready!", fmt.Sprintf("Order #%s is waiting for you", o.ID))
	}
}

// Close stops the timer and discards the order.
func (t *Tracker) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.order == nil {
		return
	}
	t.stopLocked()
	t.log.Info("order tracking closed", slog.String("order_id", t.order.ID))
	t.order = nil
	t.gen++
}

func (t *Tracker) Current() (domain.Order, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.order == nil {
		return domain.Order{}, false
	}
	return *t.order, true
}

// Running reports whether the advance timer is armed.
func (t *Tracker) Running() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.timer != nil
}

func (t *Tracker) stopLocked() {
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
}
