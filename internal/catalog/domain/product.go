package domain

import "github.com/shopspring/decimal"

type Product struct {
	ID          int
	Name        string
	Description string
	Price       decimal.Decimal
	Category    string
	Image       string
	Popular     bool
	Rating      float64
}

type SortOrder string

const (
	SortPopular   SortOrder = "popular"
	SortPriceLow  SortOrder = "price-low"
	SortPriceHigh SortOrder = "price-high"
	SortRating    SortOrder = "rating"
)

// CategoryAll matches every product when filtering.
const CategoryAll = "all"
