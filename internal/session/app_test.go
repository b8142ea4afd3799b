package session

import (
	"context"
	"math/rand/v2"
	"testing"
	"time"

	cartdomain "github.com/dwikikusuma/coffee-order/internal/cart/domain"
	catalogapp "github.com/dwikikusuma/coffee-order/internal/catalog/app"
	"github.com/dwikikusuma/coffee-order/internal/catalog/infra/memory"
	checkoutapp "github.com/dwikikusuma/coffee-order/internal/checkout/app"
	game "github.com/dwikikusuma/coffee-order/internal/game/domain"
	loyalty "github.com/dwikikusuma/coffee-order/internal/loyalty/domain"
	orderapp "github.com/dwikikusuma/coffee-order/internal/order/app"
	order "github.com/dwikikusuma/coffee-order/internal/order/domain"
	"github.com/dwikikusuma/coffee-order/pkg/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T) (*App, *clock.Mock) {
	t.Helper()
	repo, err := memory.NewDefaultProductRepo()
	require.NoError(t, err)

	clk := clock.NewMock(time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC))
	app := New(Options{
		Clock:          clk,
		Products:       repo,
		InitialLoyalty: loyalty.State{BeverageCount: 3, Points: 125},
		Rand:           rand.New(rand.NewPCG(1, 2)),
	})
	t.Cleanup(app.Close)
	return app, clk
}

func TestAddToCart(t *testing.T) {
	ctx := context.Background()

	t.Run("merges lines and notifies once", func(t *testing.T) {
		app, _ := newTestApp(t)
		require.NoError(t, app.OnAddToCart(ctx, 1, 1, nil))
		require.NoError(t, app.OnAddToCart(ctx, 1, 2, nil))

		assert.Equal(t, 3, app.ItemCount())
		assert.Len(t, app.Cart.Lines(), 1)
		assert.Equal(t, 1, app.Notifications.UnreadCount())
	})

	t.Run("unknown product", func(t *testing.T) {
		app, _ := newTestApp(t)
		err := app.OnAddToCart(ctx, 99, 1, nil)
		assert.ErrorIs(t, err, catalogapp.ErrNotFound)
		assert.Equal(t, 0, app.ItemCount())
	})

	t.Run("customizations change the unit price", func(t *testing.T) {
		app, _ := newTestApp(t)
		custom, err := cartdomain.ResolveCustomizations("large", "oat", "")
		require.NoError(t, err)
		require.NoError(t, app.OnAddToCart(ctx, 7, 1, custom))

		assert.Equal(t, "6.80", app.Totals().Subtotal.StringFixed(2))
	})

	t.Run("closes product detail", func(t *testing.T) {
		app, _ := newTestApp(t)
		_, err := app.ViewProduct(ctx, 3)
		require.NoError(t, err)
		assert.Equal(t, 3, app.State().ProductID)

		require.NoError(t, app.OnAddToCart(ctx, 3, 1, nil))
		assert.Zero(t, app.State().ProductID)
	})
}

func TestTotals(t *testing.T) {
	ctx := context.Background()
	app, _ := newTestApp(t)

	require.NoError(t, app.OnAddToCart(ctx, 7, 1, nil))
	d := app.Totals().Display()
	assert.Equal(t, "5.20", d.Subtotal)
	assert.Equal(t, "0.42", d.Tax)
	assert.Equal(t, "2.50", d.Delivery)
	assert.Equal(t, "8.12", d.Total)

	app.OnUpdateQuantity(7, 2)
	d = app.Totals().Display()
	assert.Equal(t, "10.40", d.Subtotal)
	assert.Equal(t, "0.00", d.Delivery)

	app.OnUpdateQuantity(7, 0)
	assert.Equal(t, 0, app.ItemCount())
	assert.Equal(t, "2.50", app.Totals().Display().Delivery)
}

func TestQuickOrder(t *testing.T) {
	app, _ := newTestApp(t)
	p, err := app.QuickOrder(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, p.ID)
	assert.Equal(t, 1, app.ItemCount())
}

func TestCheckoutFlow(t *testing.T) {
	ctx := context.Background()
	app, clk := newTestApp(t)

	require.NoError(t, app.OnAddToCart(ctx, 1, 2, nil))
	id, err := app.OnCheckout(ctx, "card")
	require.NoError(t, err)
	assert.Regexp(t, `^CF\d{6}$`, id)

	assert.Equal(t, 0, app.ItemCount())
	assert.Equal(t, 5, app.LoyaltySummary().BeverageCount)
	assert.True(t, app.State().Tracking)

	o, ok := app.Order()
	require.True(t, ok)
	assert.Equal(t, order.StatusConfirmed, o.Status)

	clk.Add(4 * orderapp.DefaultTickInterval)
	o, _ = app.Order()
	assert.Equal(t, order.StatusReady, o.Status)
	assert.Equal(t, 100.0, o.Progress())
	assert.False(t, app.Orders.Running())

	_, err = app.OnCheckout(ctx, "card")
	assert.ErrorIs(t, err, checkoutapp.ErrEmptyCart)
}

func TestChangeScreen(t *testing.T) {
	ctx := context.Background()

	t.Run("tears down overlays and timers", func(t *testing.T) {
		app, clk := newTestApp(t)
		require.NoError(t, app.OnAddToCart(ctx, 2, 1, nil))
		_, err := app.OnCheckout(ctx, "cash")
		require.NoError(t, err)
		_, err = app.StartGame(game.KindQuickTap)
		require.NoError(t, err)

		require.NoError(t, app.ChangeScreen(ScreenCatalog))

		st := app.State()
		assert.Equal(t, ScreenCatalog, st.Screen)
		assert.False(t, st.Tracking)
		assert.Nil(t, st.Game)
		assert.Zero(t, clk.Pending())

		points := app.LoyaltySummary().Points
		clk.Add(time.Minute)
		assert.Equal(t, points, app.LoyaltySummary().Points)
	})

	t.Run("notifications are marked read", func(t *testing.T) {
		app, _ := newTestApp(t)
		require.NoError(t, app.OnAddToCart(ctx, 2, 1, nil))
		require.Equal(t, 1, app.State().UnreadCount)

		require.NoError(t, app.ChangeScreen(ScreenNotifications))
		assert.Zero(t, app.State().UnreadCount)
	})

	t.Run("unknown screen", func(t *testing.T) {
		app, _ := newTestApp(t)
		assert.ErrorIs(t, app.ChangeScreen("settings"), ErrInvalidInput)
		assert.Equal(t, ScreenHome, app.State().Screen)
	})
}

func TestGamesAwardPoints(t *testing.T) {
	app, clk := newTestApp(t)

	_, err := app.StartGame(game.KindQuickTap)
	require.NoError(t, err)
	clk.Add(10 * time.Second)

	assert.Equal(t, 135, app.LoyaltySummary().Points)
	v, ok := app.Games.View()
	require.True(t, ok)
	assert.True(t, v.Complete)

	clk.Add(10 * time.Second)
	assert.Equal(t, 135, app.LoyaltySummary().Points)
}

func TestEarnPoints(t *testing.T) {
	app, _ := newTestApp(t)
	app.OnEarnPoints(0)
	app.OnEarnPoints(-5)
	assert.Equal(t, 125, app.LoyaltySummary().Points)

	app.OnEarnPoints(80)
	s := app.LoyaltySummary()
	assert.Equal(t, 205, s.Points)
	assert.Equal(t, 2, s.DiscountsAvailable)
	assert.Equal(t, 95, s.PointsToNextDiscount)
}
