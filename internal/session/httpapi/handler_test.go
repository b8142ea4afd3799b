package httpapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dwikikusuma/coffee-order/internal/catalog/infra/memory"
	checkout "github.com/dwikikusuma/coffee-order/internal/checkout/domain"
	game "github.com/dwikikusuma/coffee-order/internal/game/domain"
	loyalty "github.com/dwikikusuma/coffee-order/internal/loyalty/domain"
	order "github.com/dwikikusuma/coffee-order/internal/order/domain"
	"github.com/dwikikusuma/coffee-order/internal/session"
	"github.com/dwikikusuma/coffee-order/pkg/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) (http.Handler, *clock.Mock) {
	t.Helper()
	repo, err := memory.NewDefaultProductRepo()
	require.NoError(t, err)

	clk := clock.NewMock(time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC))
	app := session.New(session.Options{
		Clock:          clk,
		Products:       repo,
		InitialLoyalty: loyalty.State{BeverageCount: 3, Points: 125},
	})
	t.Cleanup(app.Close)
	return NewRouter(app, nil), clk
}

func do(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&v))
	return v
}

func intPtr(n int) *int { return &n }

func TestAddItemQuantity(t *testing.T) {
	cases := []struct {
		name string
		body any
		want int
	}{
		{"omitted defaults to one", map[string]any{"product_id": 1}, 1},
		{"explicit", addItemRequest{ProductID: 1, Quantity: intPtr(3)}, 3},
		{"zero is ignored", addItemRequest{ProductID: 1, Quantity: intPtr(0)}, 0},
		{"negative is ignored", addItemRequest{ProductID: 1, Quantity: intPtr(-2)}, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h, _ := newTestServer(t)
			rec := do(t, h, http.MethodPost, "/cart/items", tc.body)
			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, tc.want, decodeBody[checkout.QuoteResponse](t, rec).ItemCount)
		})
	}
}

func TestProducts(t *testing.T) {
	h, _ := newTestServer(t)

	t.Run("filter and sort", func(t *testing.T) {
		rec := do(t, h, http.MethodGet, "/products?category=milkshakes&sort=price-low", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		got := decodeBody[productListResponse](t, rec)
		require.Len(t, got.Products, 2)
		assert.Equal(t, "5.20", got.Products[0].Price)
		assert.Equal(t, "5.90", got.Products[1].Price)
		assert.NotEmpty(t, got.Categories)
	})

	t.Run("missing product", func(t *testing.T) {
		rec := do(t, h, http.MethodGet, "/products/404", nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "NOT_FOUND", decodeBody[errorResponse](t, rec).Code)
	})
}

func TestCartAndCheckout(t *testing.T) {
	h, clk := newTestServer(t)

	rec := do(t, h, http.MethodPost, "/cart/items", addItemRequest{ProductID: 7, Quantity: intPtr(1), Size: "large", Milk: "oat"})
	require.Equal(t, http.StatusOK, rec.Code)
	q := decodeBody[checkout.QuoteResponse](t, rec)
	assert.Equal(t, "6.80", q.Totals.Subtotal)
	assert.Equal(t, 1, q.ItemCount)

	rec = do(t, h, http.MethodPut, "/cart/items/7", quantityRequest{Quantity: 2})
	require.Equal(t, http.StatusOK, rec.Code)
	q = decodeBody[checkout.QuoteResponse](t, rec)
	assert.Equal(t, "13.60", q.Totals.Subtotal)
	assert.Equal(t, "0.00", q.Totals.Delivery)

	rec = do(t, h, http.MethodPost, "/checkout", checkoutRequest{PaymentMethod: "card"})
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Regexp(t, `^CF\d{6}$`, decodeBody[checkoutResponse](t, rec).OrderID)

	clk.Add(8 * time.Second)
	rec = do(t, h, http.MethodGet, "/order", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	o := decodeBody[order.OrderResponse](t, rec)
	assert.Equal(t, "EXTRACTING", o.Status)
	assert.Equal(t, 60.0, o.Progress)
	assert.Equal(t, 9, o.EstimatedMinutes)

	rec = do(t, h, http.MethodGet, "/loyalty", nil)
	assert.Equal(t, 5, decodeBody[loyalty.Summary](t, rec).BeverageCount)

	rec = do(t, h, http.MethodPost, "/checkout", checkoutRequest{PaymentMethod: "card"})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = do(t, h, http.MethodDelete, "/order", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = do(t, h, http.MethodGet, "/order", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestBadRequests(t *testing.T) {
	h, _ := newTestServer(t)

	cases := []struct {
		name   string
		method string
		path   string
		body   any
	}{
		{"unknown milk", http.MethodPost, "/cart/items", addItemRequest{ProductID: 1, Milk: "goat"}},
		{"payment method", http.MethodPost, "/checkout", checkoutRequest{PaymentMethod: "iou"}},
		{"screen", http.MethodPut, "/screen", screenRequest{Screen: "settings"}},
		{"game", http.MethodPost, "/games/chess", nil},
		{"review", http.MethodPost, "/reviews", reviewRequest{Rating: 9, Comment: "great"}},
		{"rating filter", http.MethodGet, "/reviews?rating=five", nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := do(t, h, tc.method, tc.path, tc.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestGames(t *testing.T) {
	h, _ := newTestServer(t)

	rec := do(t, h, http.MethodPost, "/games/input", game.Input{Index: 0})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = do(t, h, http.MethodPost, "/games/trivia", nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	var v game.View
	for range 3 {
		rec = do(t, h, http.MethodPost, "/games/input", game.Input{Index: 1})
		require.Equal(t, http.StatusOK, rec.Code)
		v = decodeBody[game.View](t, rec)
	}
	assert.True(t, v.Complete)

	rec = do(t, h, http.MethodGet, "/loyalty", nil)
	assert.Equal(t, 135, decodeBody[loyalty.Summary](t, rec).Points)

	rec = do(t, h, http.MethodDelete, "/games", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = do(t, h, http.MethodGet, "/games", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestNotificationsAndReviews(t *testing.T) {
	h, _ := newTestServer(t)

	do(t, h, http.MethodPost, "/cart/quick-order", nil)
	rec := do(t, h, http.MethodGet, "/notifications", nil)
	list := decodeBody[notificationListResponse](t, rec)
	require.Len(t, list.Notifications, 1)
	assert.Equal(t, 1, list.UnreadCount)

	rec = do(t, h, http.MethodPost, "/notifications/"+list.Notifications[0].ID+"/read", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = do(t, h, http.MethodGet, "/session", nil)
	assert.Zero(t, decodeBody[session.State](t, rec).UnreadCount)

	rec = do(t, h, http.MethodPost, "/reviews", reviewRequest{Rating: 4, Comment: "Lovely crepes"})
	require.Equal(t, http.StatusCreated, rec.Code)
	rec = do(t, h, http.MethodPost, "/reviews", reviewRequest{Rating: 2, Comment: "Too sweet", Product: "Fruit Waffle"})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = do(t, h, http.MethodGet, "/reviews?rating=4", nil)
	reviews := decodeBody[reviewListResponse](t, rec)
	require.Len(t, reviews.Reviews, 1)
	assert.Equal(t, "General", reviews.Reviews[0].Product)
	assert.InDelta(t, 3.0, reviews.AverageRating, 0.001)
	assert.Len(t, reviews.Distribution, 5)
}

func TestChangeScreen(t *testing.T) {
	h, clk := newTestServer(t)

	do(t, h, http.MethodPost, "/games/quicktap", nil)
	rec := do(t, h, http.MethodPut, "/screen", screenRequest{Screen: "reviews"})
	require.Equal(t, http.StatusOK, rec.Code)

	st := decodeBody[session.State](t, rec)
	assert.Equal(t, session.ScreenReviews, st.Screen)
	assert.Nil(t, st.Game)
	assert.Zero(t, clk.Pending())
}
