package domain

import (
	cart "github.com/dwikikusuma/coffee-order/internal/cart/domain"
	"github.com/shopspring/decimal"
)

type QuoteLine struct {
	ProductID int
	Name      string
	Quantity  int
	UnitPrice decimal.Decimal
	LineTotal decimal.Decimal
}

type Quote struct {
	Lines  []QuoteLine
	Totals cart.Totals
}

type QuoteLineResponse struct {
	ProductID int    `json:"product_id"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	UnitPrice string `json:"unit_price"`
	LineTotal string `json:"line_total"`
}

type QuoteResponse struct {
	Lines     []QuoteLineResponse `json:"lines"`
	Totals    cart.DisplayTotals  `json:"totals"`
	ItemCount int                 `json:"item_count"`
}

func (q Quote) Response() QuoteResponse {
	lines := make([]QuoteLineResponse, 0, len(q.Lines))
	count := 0
	for _, ln := range q.Lines {
		count += ln.Quantity
		lines = append(lines, QuoteLineResponse{
			ProductID: ln.ProductID,
			Name:      ln.Name,
			Quantity:  ln.Quantity,
			UnitPrice: ln.UnitPrice.StringFixed(2),
			LineTotal: ln.LineTotal.StringFixed(2),
		})
	}
	return QuoteResponse{Lines: lines, Totals: q.Totals.Display(), ItemCount: count}
}
