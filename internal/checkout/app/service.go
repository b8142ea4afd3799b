package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	cartapp "github.com/dwikikusuma/coffee-order/internal/cart/app"
	"github.com/dwikikusuma/coffee-order/internal/checkout/domain"
	order "github.com/dwikikusuma/coffee-order/internal/order/domain"
	"github.com/dwikikusuma/coffee-order/pkg/clock"
)

type CartStore interface {
	Snapshot() cartapp.Snapshot
	Drain() cartapp.Snapshot
}

type PurchaseRecorder interface {
	RecordPurchase(quantity int)
}

type OrderStarter interface {
	Start(o order.Order)
}

type Notifier interface {
	Notify(title, message string)
}

var (
	ErrEmptyCart            = errors.New("cart is empty")
	ErrInvalidPaymentMethod = errors.New("invalid payment method")
)

type Service struct {
	Cart     CartStore
	Loyalty  PurchaseRecorder
	Orders   OrderStarter
	Notifier Notifier

	clock clock.Clock
	log   *slog.Logger
}

func NewService(cart CartStore, loyalty PurchaseRecorder, orders OrderStarter, notifier Notifier, clk clock.Clock, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{
		Cart:     cart,
		Loyalty:  loyalty,
		Orders:   orders,
		Notifier: notifier,
		clock:    clk,
		log:      log,
	}
}

func (s *Service) Quote(ctx context.Context) (domain.Quote, error) {
	if err := ctx.Err(); err != nil {
		return domain.Quote{}, err
	}
	return quoteFrom(s.Cart.Snapshot()), nil
}

func quoteFrom(snap cartapp.Snapshot) domain.Quote {
	lines := make([]domain.QuoteLine, len(snap.Lines))
	for idx, it := range snap.Lines {
		lines[idx] = domain.QuoteLine{
			ProductID: it.Product.ID,
			Name:      it.Product.Name,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice(),
			LineTotal: it.Total(),
		}
	}
	return domain.Quote{Lines: lines, Totals: snap.Totals}
}

// Checkout places the cart as an order paid with method and starts tracking
// it. The cart is emptied, so a repeated submission fails with ErrEmptyCart.
func (s *Service) Checkout(ctx context.Context, method string) (order.Order, error) {
	if err := ctx.Err(); err != nil {
		return order.Order{}, err
	}
	pm := order.PaymentMethod(method)
	if !pm.Valid() {
		return order.Order{}, fmt.Errorf("%q: %w", method, ErrInvalidPaymentMethod)
	}

	snap := s.Cart.Drain()
	if snap.ItemCount == 0 {
		return order.Order{}, ErrEmptyCart
	}

	now := s.clock.Now()
	o := order.New(order.NewOrderID(now), pm, snap.Lines, snap.Totals, now)

	s.Loyalty.RecordPurchase(snap.ItemCount)
	if s.Notifier != nil {
		s.Notifier.Notify("Order placed!", fmt.Sprintf("Paid with %s. Tracking order #%s", pm, o.ID))
	}
	s.Orders.Start(o)

	s.log.Info("checkout",
		slog.String("order_id", o.ID),
		slog.String("payment_method", string(pm)),
		slog.Int("item_count", snap.ItemCount),
		slog.String("total", snap.Totals.Total.StringFixed(2)),
	)
	return o, nil
}
