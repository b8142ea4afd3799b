package session

import (
	game "github.com/dwikikusuma/coffee-order/internal/game/domain"
)

type Screen string

const (
	ScreenHome          Screen = "home"
	ScreenCatalog       Screen = "catalog"
	ScreenCart          Screen = "cart"
	ScreenNotifications Screen = "notifications"
	ScreenReviews       Screen = "reviews"
)

func (s Screen) Valid() bool {
	switch s {
	case ScreenHome, ScreenCatalog, ScreenCart, ScreenNotifications, ScreenReviews:
		return true
	}
	return false
}

// State is what the shell renders: the active screen plus the overlays open
// on top of it.
type State struct {
	Screen        Screen     `json:"screen"`
	ProductID     int        `json:"product_id,omitempty"`
	Tracking      bool       `json:"tracking"`
	Game          *game.Kind `json:"game,omitempty"`
	CartItemCount int        `json:"cart_item_count"`
	UnreadCount   int        `json:"unread_count"`
}
