package app

import (
	"log/slog"
	"sync"

	"github.com/dwikikusuma/coffee-order/internal/notification/domain"
	"github.com/dwikikusuma/coffee-order/pkg/clock"
	"github.com/google/uuid"
)

const DefaultCapacity = 50

// Feed is the in-app notification list, newest first. Once it holds more
// than its capacity the oldest entries are dropped.
type Feed struct {
	mu       sync.Mutex
	clock    clock.Clock
	capacity int
	items    []domain.Notification
	log      *slog.Logger
}

func NewFeed(clk clock.Clock, capacity int, log *slog.Logger) *Feed {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	if log == nil {
		log = slog.Default()
	}
	return &Feed{clock: clk, capacity: capacity, log: log}
}

func (f *Feed) Push(kind domain.Kind, title, message string) domain.Notification {
	n := domain.Notification{
		ID:        uuid.NewString(),
		Kind:      kind,
		Title:     title,
		Message:   message,
		CreatedAt: f.clock.Now(),
	}

	f.mu.Lock()
	f.items = append([]domain.Notification{n}, f.items...)
	if len(f.items) > f.capacity {
		f.items = f.items[:f.capacity]
	}
	f.mu.Unlock()

	f.log.Debug("notification", slog.String("kind", string(kind)), slog.String("title", title))
	return n
}

// Notify records a plain informational notification.
func (f *Feed) Notify(title, message string) {
	f.Push(domain.KindInfo, title, message)
}

// Notifier returns an adapter that tags every notification with kind.
func (f *Feed) Notifier(kind domain.Kind) KindNotifier {
	return KindNotifier{feed: f, kind: kind}
}

type KindNotifier struct {
	feed *Feed
	kind domain.Kind
}

func (k KindNotifier) Notify(title, message string) {
	k.feed.Push(k.kind, title, message)
}

func (f *Feed) List() []domain.Notification {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.Notification, len(f.items))
	copy(out, f.items)
	return out
}

// MarkRead is a no-op for unknown ids.
func (f *Feed) MarkRead(id string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.items {
		if f.items[i].ID == id {
			f.items[i].Read = true
			return
		}
	}
}

func (f *Feed) MarkAllRead() {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.items {
		f.items[i].Read = true
	}
}

func (f *Feed) UnreadCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, it := range f.items {
		if !it.Read {
			n++
		}
	}
	return n
}
