package domain

import (
	"fmt"
	"time"

	cart "github.com/dwikikusuma/coffee-order/internal/cart/domain"
)

type Status int

const (
	StatusConfirmed Status = iota
	StatusPreparing
	StatusExtracting
	StatusFinalizing
	StatusReady
)

var statuses = []struct {
	code, title, description string
}{
	{"CONFIRMED", "Order confirmed", "Your order has been received and confirmed"},
	{"PREPARING", "Preparing ingredients", "Selecting the best beans"},
	{"EXTRACTING", "Grinding and extracting", "Pulling the perfect espresso"},
	{"FINALIZING", "Finalizing", "Latte art and finishing touches"},
	{"READY", "Ready for pickup!", "Your order is waiting for you"},
}

// StatusCount is the number of lifecycle stages.
const StatusCount = int(StatusReady) + 1

func (s Status) String() string {
	if s < 0 || int(s) >= StatusCount {
		return "UNKNOWN"
	}
	return statuses[s].code
}

func (s Status) Title() string {
	if s < 0 || int(s) >= StatusCount {
		return ""
	}
	return statuses[s].title
}

func (s Status) Description() string {
	if s < 0 || int(s) >= StatusCount {
		return ""
	}
	return statuses[s].description
}

const (
	InitialEstimateMinutes = 15
	MinutesPerStage        = 3
)

type PaymentMethod string

const (
	PaymentCard    PaymentMethod = "card"
	PaymentDigital PaymentMethod = "digital"
	PaymentCash    PaymentMethod = "cash"
)

func (p PaymentMethod) Valid() bool {
	switch p {
	case PaymentCard, PaymentDigital, PaymentCash:
		return true
	}
	return false
}

type Order struct {
	ID               string
	Status           Status
	EstimatedMinutes int
	PaymentMethod    PaymentMethod
	Items            []cart.Line
	Totals           cart.Totals
	PlacedAt         time.Time
}

func New(id string, method PaymentMethod, items []cart.Line, totals cart.Totals, placedAt time.Time) Order {
	return Order{
		ID:               id,
		Status:           StatusConfirmed,
		EstimatedMinutes: InitialEstimateMinutes,
		PaymentMethod:    method,
		Items:            items,
		Totals:           totals,
		PlacedAt:         placedAt,
	}
}

// Advance moves one stage forward and reports whether anything changed. A
// ready order stays ready.
func (o *Order) Advance() bool {
	if o.Status >= StatusReady {
		return false
	}
	o.Status++
	o.EstimatedMinutes -= MinutesPerStage
	if o.EstimatedMinutes < 0 {
		o.EstimatedMinutes = 0
	}
	return true
}

func (o Order) IsReady() bool {
	return o.Status == StatusReady
}

// Progress is the completion percentage of the lifecycle.
func (o Order) Progress() float64 {
	return float64(int(o.Status)+1) / float64(StatusCount) * 100
}

type Step struct {
	Status      string `json:"status"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
	Current     bool   `json:"current"`
}

func (o Order) Steps() []Step {
	out := make([]Step, 0, StatusCount)
	for i := 0; i < StatusCount; i++ {
		s := Status(i)
		out = append(out, Step{
			Status:      s.String(),
			Title:       s.Title(),
			Description: s.Description(),
			Completed:   s <= o.Status,
			Current:     s == o.Status,
		})
	}
	return out
}

type OrderResponse struct {
	ID               string             `json:"id"`
	Status           string             `json:"status"`
	Title            string             `json:"title"`
	Progress         float64            `json:"progress"`
	EstimatedMinutes int                `json:"estimated_minutes"`
	PaymentMethod    string             `json:"payment_method"`
	ItemCount        int                `json:"item_count"`
	Totals           cart.DisplayTotals `json:"totals"`
	Steps            []Step             `json:"steps"`
	PlacedAt         time.Time          `json:"placed_at"`
}

func (o Order) Response() OrderResponse {
	count := 0
	for _, l := range o.Items {
		count += l.Quantity
	}
	return OrderResponse{
		ID:               o.ID,
		Status:           o.Status.String(),
		Title:            o.Status.Title(),
		Progress:         o.Progress(),
		EstimatedMinutes: o.EstimatedMinutes,
		PaymentMethod:    string(o.PaymentMethod),
		ItemCount:        count,
		Totals:           o.Totals.Display(),
		Steps:            o.Steps(),
		PlacedAt:         o.PlacedAt,
	}
}

// NewOrderID derives a display id from the checkout time: "CF" followed by
// the last six digits of the millisecond timestamp.
func NewOrderID(at time.Time) string {
	ms := at.UnixMilli() % 1_000_000
	if ms < 0 {
		ms = -ms
	}
	return fmt.Sprintf("CF%06d", ms)
}
