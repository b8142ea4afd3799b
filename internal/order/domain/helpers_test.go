package domain

import cart "github.com/dwikikusuma/coffee-order/internal/cart/domain"

func cartTotalsZero() cart.Totals {
	return cart.NewCart().Totals()
}
