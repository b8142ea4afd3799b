package app

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/dwikikusuma/coffee-order/internal/cart/domain"
	catalog "github.com/dwikikusuma/coffee-order/internal/catalog/domain"
)

// Service owns the session cart. Every method is safe for concurrent use.
type Service struct {
	mu       sync.Mutex
	cart     *domain.Cart
	notifier Notifier
	log      *slog.Logger
}

func NewService(notifier Notifier, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{
		cart:     domain.NewCart(),
		notifier: notifier,
		log:      log,
	}
}

func (s *Service) AddItem(p catalog.Product, quantity int, custom *domain.Customizations) {
	s.mu.Lock()
	added := s.cart.AddItem(p, quantity, custom)
	count := s.cart.ItemCount()
	s.mu.Unlock()

	s.log.Debug("cart add", slog.Int("product_id", p.ID), slog.Int("quantity", quantity), slog.Int("item_count", count))
	if added && s.notifier != nil {
		s.notifier.Notify(fmt.Sprintf("%s added to cart", p.Name), "Great choice!")
	}
}

func (s *Service) SetQuantity(productID, quantity int) {
	if quantity == 0 {
		s.RemoveItem(productID)
		return
	}
	s.mu.Lock()
	s.cart.SetQuantity(productID, quantity)
	s.mu.Unlock()

	s.log.Debug("cart set quantity", slog.Int("product_id", productID), slog.Int("quantity", quantity))
}

func (s *Service) RemoveItem(productID int) {
	s.mu.Lock()
	removed := s.cart.RemoveItem(productID)
	s.mu.Unlock()

	if !removed {
		return
	}
	s.log.Debug("cart remove", slog.Int("product_id", productID))
	if s.notifier != nil {
		s.notifier.Notify("Item removed from cart", "")
	}
}

func (s *Service) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart.Clear()
}

func (s *Service) Lines() []domain.Line {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Lines()
}

func (s *Service) Totals() domain.Totals {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Totals()
}

func (s *Service) ItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.ItemCount()
}

// Snapshot is the cart content at one point in time.
type Snapshot struct {
	Lines     []domain.Line
	Totals    domain.Totals
	ItemCount int
}

func (s *Service) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Drain returns the current content and empties the cart in one step.
func (s *Service) Drain() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := s.snapshotLocked()
	s.cart.Clear()
	return snap
}

func (s *Service) snapshotLocked() Snapshot {
	return Snapshot{
		Lines:     s.cart.Lines(),
		Totals:    s.cart.Totals(),
		ItemCount: s.cart.ItemCount(),
	}
}
