package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Menu of drink customizations offered on the product detail screen.
var (
	Sizes = map[string]Option{
		"small":  {ID: "small", PriceDelta: decimal.Zero},
		"medium": {ID: "medium", PriceDelta: decimal.RequireFromString("0.50")},
		"large":  {ID: "large", PriceDelta: decimal.RequireFromString("1.00")},
	}
	Milks = map[string]Option{
		"regular": {ID: "regular", PriceDelta: decimal.Zero},
		"oat":     {ID: "oat", PriceDelta: decimal.RequireFromString("0.60")},
		"almond":  {ID: "almond", PriceDelta: decimal.RequireFromString("0.60")},
		"coconut": {ID: "coconut", PriceDelta: decimal.RequireFromString("0.60")},
		"soy":     {ID: "soy", PriceDelta: decimal.RequireFromString("0.50")},
	}
	Sweetness = map[string]Option{
		"none":   {ID: "none", PriceDelta: decimal.Zero},
		"light":  {ID: "light", PriceDelta: decimal.Zero},
		"normal": {ID: "normal", PriceDelta: decimal.Zero},
		"sweet":  {ID: "sweet", PriceDelta: decimal.Zero},
	}
)

// ResolveCustomizations looks up option ids. Empty ids take the product
// detail defaults: medium, regular, normal.
func ResolveCustomizations(size, milk, sweetness string) (*Customizations, error) {
	s, err := pick(Sizes, "size", size, "medium")
	if err != nil {
		return nil, err
	}
	m, err := pick(Milks, "milk", milk, "regular")
	if err != nil {
		return nil, err
	}
	sw, err := pick(Sweetness, "sweetness", sweetness, "normal")
	if err != nil {
		return nil, err
	}
	return &Customizations{Size: s, Milk: m, Sweetness: sw}, nil
}

var ErrUnknownOption = errors.New("unknown customization option")

func pick(opts map[string]Option, kind, id, def string) (Option, error) {
	if id == "" {
		id = def
	}
	o, ok := opts[id]
	if !ok {
		return Option{}, fmt.Errorf("%s %q: %w", kind, id, ErrUnknownOption)
	}
	return o, nil
}
