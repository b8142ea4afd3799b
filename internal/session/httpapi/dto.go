package httpapi

import (
	catalog "github.com/dwikikusuma/coffee-order/internal/catalog/domain"
	notification "github.com/dwikikusuma/coffee-order/internal/notification/domain"
	review "github.com/dwikikusuma/coffee-order/internal/review/domain"
)

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type productResponse struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       string  `json:"price"`
	Category    string  `json:"category"`
	Image       string  `json:"image"`
	Popular     bool    `json:"popular"`
	Rating      float64 `json:"rating"`
}

func toProductResponse(p catalog.Product) productResponse {
	return productResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price.StringFixed(2),
		Category:    p.Category,
		Image:       p.Image,
		Popular:     p.Popular,
		Rating:      p.Rating,
	}
}

type productListResponse struct {
	Products   []productResponse `json:"products"`
	Categories []string          `json:"categories"`
}

// addItemRequest leaves Quantity nil when the client omits it, which adds a
// single unit.
type addItemRequest struct {
	ProductID int    `json:"product_id"`
	Quantity  *int   `json:"quantity,omitempty"`
	Size      string `json:"size"`
	Milk      string `json:"milk"`
	Sweetness string `json:"sweetness"`
}

func (r addItemRequest) quantity() int {
	if r.Quantity == nil {
		return 1
	}
	return *r.Quantity
}

type quantityRequest struct {
	Quantity int `json:"quantity"`
}

type checkoutRequest struct {
	PaymentMethod string `json:"payment_method"`
}

type checkoutResponse struct {
	OrderID string `json:"order_id"`
}

type pointsRequest struct {
	Amount int `json:"amount"`
}

type screenRequest struct {
	Screen string `json:"screen"`
}

type notificationListResponse struct {
	Notifications []notification.Notification `json:"notifications"`
	UnreadCount   int                         `json:"unread_count"`
}

type reviewRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
	Product string `json:"product"`
}

type reviewListResponse struct {
	Reviews       []review.Review       `json:"reviews"`
	AverageRating float64               `json:"average_rating"`
	Distribution  []review.RatingBucket `json:"distribution"`
}
