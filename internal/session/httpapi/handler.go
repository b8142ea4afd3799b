package httpapi

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	cart "github.com/dwikikusuma/coffee-order/internal/cart/domain"
	catalog "github.com/dwikikusuma/coffee-order/internal/catalog/domain"
	game "github.com/dwikikusuma/coffee-order/internal/game/domain"
	"github.com/dwikikusuma/coffee-order/internal/session"
	"github.com/gorilla/mux"
)

type Handler struct {
	app *session.App
	log *slog.Logger
}

// NewRouter exposes the session over JSON/HTTP.
func NewRouter(app *session.App, log *slog.Logger) http.Handler {
	if log == nil {
		log = slog.Default()
	}
	h := &Handler{app: app, log: log}

	r := mux.NewRouter()
	r.Use(h.logRequests)

	r.HandleFunc("/healthz", ok).Methods(http.MethodGet)
	r.HandleFunc("/readyz", ok).Methods(http.MethodGet)

	r.HandleFunc("/session", h.state).Methods(http.MethodGet)
	r.HandleFunc("/screen", h.changeScreen).Methods(http.MethodPut)
	r.HandleFunc("/screen/product", h.closeProduct).Methods(http.MethodDelete)

	r.HandleFunc("/products", h.listProducts).Methods(http.MethodGet)
	r.HandleFunc("/products/{id:[0-9]+}", h.viewProduct).Methods(http.MethodGet)

	r.HandleFunc("/cart", h.getCart).Methods(http.MethodGet)
	r.HandleFunc("/cart/items", h.addItem).Methods(http.MethodPost)
	r.HandleFunc("/cart/items/{id:[0-9]+}", h.setQuantity).Methods(http.MethodPut)
	r.HandleFunc("/cart/items/{id:[0-9]+}", h.removeItem).Methods(http.MethodDelete)
	r.HandleFunc("/cart/quick-order", h.quickOrder).Methods(http.MethodPost)

	r.HandleFunc("/checkout", h.checkout).Methods(http.MethodPost)
	r.HandleFunc("/order", h.getOrder).Methods(http.MethodGet)
	r.HandleFunc("/order", h.closeOrder).Methods(http.MethodDelete)

	r.HandleFunc("/loyalty", h.getLoyalty).Methods(http.MethodGet)
	r.HandleFunc("/loyalty/points", h.earnPoints).Methods(http.MethodPost)

	// input must be registered before the {kind} route.
	r.HandleFunc("/games/input", h.gameInput).Methods(http.MethodPost)
	r.HandleFunc("/games/{kind}", h.startGame).Methods(http.MethodPost)
	r.HandleFunc("/games", h.getGame).Methods(http.MethodGet)
	r.HandleFunc("/games", h.exitGame).Methods(http.MethodDelete)

	r.HandleFunc("/notifications", h.listNotifications).Methods(http.MethodGet)
	r.HandleFunc("/notifications/read", h.readAllNotifications).Methods(http.MethodPost)
	r.HandleFunc("/notifications/{id}/read", h.readNotification).Methods(http.MethodPost)

	r.HandleFunc("/reviews", h.listReviews).Methods(http.MethodGet)
	r.HandleFunc("/reviews", h.submitReview).Methods(http.MethodPost)
	r.HandleFunc("/reviews/{id}/like", h.likeReview).Methods(http.MethodPost)

	return r
}

func ok(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) }

func (h *Handler) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		h.log.Debug("http request",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Duration("elapsed", time.Since(start)),
		)
	})
}

func (h *Handler) state(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.app.State())
}

func (h *Handler) changeScreen(w http.ResponseWriter, r *http.Request) {
	var req screenRequest
	if !h.decode(w, r, &req) {
		return
	}
	if err := h.app.ChangeScreen(session.Screen(req.Screen)); err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, h.app.State())
}

func (h *Handler) closeProduct(w http.ResponseWriter, r *http.Request) {
	h.app.CloseProduct()
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	products, err := h.app.Catalog.ListProducts(r.Context(), q.Get("category"), catalog.SortOrder(q.Get("sort")))
	if err != nil {
		h.writeError(w, err)
		return
	}
	categories, err := h.app.Catalog.Categories(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}

	out := productListResponse{Products: make([]productResponse, 0, len(products)), Categories: categories}
	for _, p := range products {
		out.Products = append(out.Products, toProductResponse(p))
	}
	h.writeJSON(w, http.StatusOK, out)
}

func (h *Handler) viewProduct(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "id")
	if err != nil {
		h.writeError(w, err)
		return
	}
	p, err := h.app.ViewProduct(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, toProductResponse(p))
}

func (h *Handler) getCart(w http.ResponseWriter, r *http.Request) {
	q, err := h.app.Quote(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, q.Response())
}

func (h *Handler) addItem(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if !h.decode(w, r, &req) {
		return
	}

	var custom *cart.Customizations
	if req.Size != "" || req.Milk != "" || req.Sweetness != "" {
		c, err := cart.ResolveCustomizations(req.Size, req.Milk, req.Sweetness)
		if err != nil {
			h.writeError(w, err)
			return
		}
		custom = c
	}

	if err := h.app.OnAddToCart(r.Context(), req.ProductID, req.quantity(), custom); err != nil {
		h.writeError(w, err)
		return
	}
	h.getCart(w, r)
}

func (h *Handler) setQuantity(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "id")
	if err != nil {
		h.writeError(w, err)
		return
	}
	var req quantityRequest
	if !h.decode(w, r, &req) {
		return
	}
	h.app.OnUpdateQuantity(id, req.Quantity)
	h.getCart(w, r)
}

func (h *Handler) removeItem(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "id")
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.app.OnRemoveItem(id)
	h.getCart(w, r)
}

func (h *Handler) quickOrder(w http.ResponseWriter, r *http.Request) {
	if _, err := h.app.QuickOrder(r.Context()); err != nil {
		h.writeError(w, err)
		return
	}
	h.getCart(w, r)
}

func (h *Handler) checkout(w http.ResponseWriter, r *http.Request) {
	var req checkoutRequest
	if !h.decode(w, r, &req) {
		return
	}
	id, err := h.app.OnCheckout(r.Context(), req.PaymentMethod)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, checkoutResponse{OrderID: id})
}

func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	o, found := h.app.Order()
	if !found {
		h.writeError(w, fmt.Errorf("no order is being tracked: %w", errNotFound))
		return
	}
	h.writeJSON(w, http.StatusOK, o.Response())
}

func (h *Handler) closeOrder(w http.ResponseWriter, r *http.Request) {
	h.app.CloseTracking()
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) getLoyalty(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.app.LoyaltySummary())
}

func (h *Handler) earnPoints(w http.ResponseWriter, r *http.Request) {
	var req pointsRequest
	if !h.decode(w, r, &req) {
		return
	}
	h.app.OnEarnPoints(req.Amount)
	h.writeJSON(w, http.StatusOK, h.app.LoyaltySummary())
}

func (h *Handler) startGame(w http.ResponseWriter, r *http.Request) {
	v, err := h.app.StartGame(game.Kind(mux.Vars(r)["kind"]))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, v)
}

func (h *Handler) gameInput(w http.ResponseWriter, r *http.Request) {
	var in game.Input
	if !h.decode(w, r, &in) {
		return
	}
	v, err := h.app.GameInput(in)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, v)
}

func (h *Handler) getGame(w http.ResponseWriter, r *http.Request) {
	v, found := h.app.Games.View()
	if !found {
		h.writeError(w, fmt.Errorf("no game is running: %w", errNotFound))
		return
	}
	h.writeJSON(w, http.StatusOK, v)
}

func (h *Handler) exitGame(w http.ResponseWriter, r *http.Request) {
	h.app.ExitGame()
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) listNotifications(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, notificationListResponse{
		Notifications: h.app.Notifications.List(),
		UnreadCount:   h.app.Notifications.UnreadCount(),
	})
}

func (h *Handler) readAllNotifications(w http.ResponseWriter, r *http.Request) {
	h.app.Notifications.MarkAllRead()
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) readNotification(w http.ResponseWriter, r *http.Request) {
	h.app.Notifications.MarkRead(mux.Vars(r)["id"])
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) listReviews(w http.ResponseWriter, r *http.Request) {
	rating := 0
	if v := r.URL.Query().Get("rating"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			h.writeError(w, fmt.Errorf("rating %q: %w", v, errBadRequest))
			return
		}
		rating = n
	}
	h.writeJSON(w, http.StatusOK, reviewListResponse{
		Reviews:       h.app.Reviews.List(rating),
		AverageRating: h.app.Reviews.AverageRating(),
		Distribution:  h.app.Reviews.Distribution(),
	})
}

func (h *Handler) submitReview(w http.ResponseWriter, r *http.Request) {
	var req reviewRequest
	if !h.decode(w, r, &req) {
		return
	}
	rv, err := h.app.Reviews.Submit(req.Rating, req.Comment, req.Product)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, rv)
}

func (h *Handler) likeReview(w http.ResponseWriter, r *http.Request) {
	h.app.Reviews.ToggleLike(mux.Vars(r)["id"])
	w.WriteHeader(http.StatusNoContent)
}

func pathInt(r *http.Request, key string) (int, error) {
	v := mux.Vars(r)[key]
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s %q: %w", key, v, errBadRequest)
	}
	return n, nil
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		h.writeError(w, fmt.Errorf("decode body: %v: %w", err, errBadRequest))
		return false
	}
	return true
}

func (h *Handler) writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.log.Error("encode response", slog.Any("err", err))
	}
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	code, name, msg := httpStatusFromGRPC(mapErr(err))
	if code >= http.StatusInternalServerError {
		h.log.Error("request failed", slog.Any("err", err))
	}
	h.writeJSON(w, code, errorResponse{Code: name, Message: msg})
}
