package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	cartapp "github.com/dwikikusuma/coffee-order/internal/cart/app"
	cart "github.com/dwikikusuma/coffee-order/internal/cart/domain"
	catalogapp "github.com/dwikikusuma/coffee-order/internal/catalog/app"
	catalog "github.com/dwikikusuma/coffee-order/internal/catalog/domain"
	checkoutapp "github.com/dwikikusuma/coffee-order/internal/checkout/app"
	checkout "github.com/dwikikusuma/coffee-order/internal/checkout/domain"
	gameapp "github.com/dwikikusuma/coffee-order/internal/game/app"
	game "github.com/dwikikusuma/coffee-order/internal/game/domain"
	loyaltyapp "github.com/dwikikusuma/coffee-order/internal/loyalty/app"
	loyalty "github.com/dwikikusuma/coffee-order/internal/loyalty/domain"
	notificationapp "github.com/dwikikusuma/coffee-order/internal/notification/app"
	notification "github.com/dwikikusuma/coffee-order/internal/notification/domain"
	orderapp "github.com/dwikikusuma/coffee-order/internal/order/app"
	order "github.com/dwikikusuma/coffee-order/internal/order/domain"
	reviewapp "github.com/dwikikusuma/coffee-order/internal/review/app"
	"github.com/dwikikusuma/coffee-order/pkg/clock"
)

var ErrInvalidInput = errors.New("invalid input")

type Options struct {
	Clock    clock.Clock
	Products catalogapp.ProductRepo

	OrderTickInterval time.Duration
	FlipDelay         time.Duration
	QuickTapSeconds   int
	Questions         []game.Question
	InitialLoyalty    loyalty.State

	Rand   *rand.Rand
	Logger *slog.Logger
}

// App is the root of one ordering session. It owns every component and the
// screen state, and is the only place where components are wired together.
type App struct {
	mu        sync.Mutex
	screen    Screen
	productID int

	Catalog       *catalogapp.Service
	Cart          *cartapp.Service
	Loyalty       *loyaltyapp.Tracker
	Orders        *orderapp.Tracker
	Games         *gameapp.Engine
	Notifications *notificationapp.Feed
	Reviews       *reviewapp.Board
	Checkout      *checkoutapp.Service

	log *slog.Logger
}

func New(opts Options) *App {
	clk := opts.Clock
	if clk == nil {
		clk = clock.New()
	}
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}

	feed := notificationapp.NewFeed(clk, notificationapp.DefaultCapacity, log)
	carts := cartapp.NewService(feed.Notifier(notification.KindCart), log)
	points := loyaltyapp.NewTracker(opts.InitialLoyalty, feed.Notifier(notification.KindReward), log)
	orders := orderapp.NewTracker(clk, opts.OrderTickInterval, feed.Notifier(notification.KindOrderReady), log)
	games := gameapp.NewEngine(clk, points, gameapp.Options{
		FlipDelay:       opts.FlipDelay,
		QuickTapSeconds: opts.QuickTapSeconds,
		Questions:       opts.Questions,
		Rand:            opts.Rand,
		Logger:          log,
	})

	return &App{
		screen:        ScreenHome,
		Catalog:       catalogapp.NewService(opts.Products),
		Cart:          carts,
		Loyalty:       points,
		Orders:        orders,
		Games:         games,
		Notifications: feed,
		Reviews:       reviewapp.NewBoard(clk, log),
		Checkout:      checkoutapp.NewService(carts, points, orders, feed.Notifier(notification.KindOrderConfirmed), clk, log),
		log:           log,
	}
}

func (a *App) State() State {
	a.mu.Lock()
	st := State{Screen: a.screen, ProductID: a.productID}
	a.mu.Unlock()

	_, st.Tracking = a.Orders.Current()
	if v, ok := a.Games.View(); ok {
		kind := v.Kind
		st.Game = &kind
	}
	st.CartItemCount = a.Cart.ItemCount()
	st.UnreadCount = a.Notifications.UnreadCount()
	return st
}

// ChangeScreen switches the active screen. Leaving a view closes the tracking
// overlay, exits any running game and closes the product detail. Opening
// notifications marks them all read.
func (a *App) ChangeScreen(s Screen) error {
	if !s.Valid() {
		return fmt.Errorf("screen %q: %w", s, ErrInvalidInput)
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	a.Orders.Close()
	a.Games.Exit()
	a.productID = 0
	a.screen = s
	if s == ScreenNotifications {
		a.Notifications.MarkAllRead()
	}

	a.log.Debug("screen changed", slog.String("screen", string(s)))
	return nil
}

// ViewProduct opens the product detail overlay.
func (a *App) ViewProduct(ctx context.Context, id int) (catalog.Product, error) {
	p, err := a.Catalog.GetProduct(ctx, id)
	if err != nil {
		return catalog.Product{}, err
	}
	a.mu.Lock()
	a.productID = p.ID
	a.mu.Unlock()
	return p, nil
}

func (a *App) CloseProduct() {
	a.mu.Lock()
	a.productID = 0
	a.mu.Unlock()
}

// OnAddToCart adds quantity units of the product. A nil custom keeps the
// customizations of an existing line. Adding from the detail overlay closes it.
func (a *App) OnAddToCart(ctx context.Context, productID, quantity int, custom *cart.Customizations) error {
	p, err := a.Catalog.GetProduct(ctx, productID)
	if err != nil {
		return err
	}
	a.Cart.AddItem(p, quantity, custom)

	a.mu.Lock()
	if a.productID == p.ID {
		a.productID = 0
	}
	a.mu.Unlock()
	return nil
}

// QuickOrder adds one unit of the most popular product.
func (a *App) QuickOrder(ctx context.Context) (catalog.Product, error) {
	p, err := a.Catalog.MostPopular(ctx)
	if err != nil {
		return catalog.Product{}, err
	}
	a.Cart.AddItem(p, 1, nil)
	return p, nil
}

func (a *App) OnUpdateQuantity(productID, quantity int) {
	a.Cart.SetQuantity(productID, quantity)
}

func (a *App) OnRemoveItem(productID int) {
	a.Cart.RemoveItem(productID)
}

// OnCheckout places the order and opens the tracking overlay.
func (a *App) OnCheckout(ctx context.Context, paymentMethod string) (string, error) {
	o, err := a.Checkout.Checkout(ctx, paymentMethod)
	if err != nil {
		return "", err
	}
	return o.ID, nil
}

// OnEarnPoints credits points; non-positive amounts are ignored.
func (a *App) OnEarnPoints(amount int) {
	a.Loyalty.AwardPoints(amount)
}

func (a *App) Totals() cart.Totals {
	return a.Cart.Totals()
}

func (a *App) ItemCount() int {
	return a.Cart.ItemCount()
}

func (a *App) Quote(ctx context.Context) (checkout.Quote, error) {
	return a.Checkout.Quote(ctx)
}

func (a *App) LoyaltySummary() loyalty.Summary {
	return a.Loyalty.Summary()
}

func (a *App) Order() (order.Order, bool) {
	return a.Orders.Current()
}

func (a *App) CloseTracking() {
	a.Orders.Close()
}

func (a *App) StartGame(kind game.Kind) (game.View, error) {
	return a.Games.Start(kind)
}

func (a *App) GameInput(in game.Input) (game.View, error) {
	return a.Games.Input(in)
}

func (a *App) ExitGame() {
	a.Games.Exit()
}

// Close stops every timer owned by the session.
func (a *App) Close() {
	a.Orders.Close()
	a.Games.Exit()
}
