package memory

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dwikikusuma/coffee-order/internal/catalog/app"
	"github.com/dwikikusuma/coffee-order/internal/catalog/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

//go:embed data/menu.yaml
var defaultMenu []byte

type menuFile struct {
	Products []productRecord `yaml:"products"`
}

type productRecord struct {
	ID          int     `yaml:"id"`
	Name        string  `yaml:"name"`
	Description string  `yaml:"description"`
	Price       string  `yaml:"price"`
	Category    string  `yaml:"category"`
	Image       string  `yaml:"image"`
	Popular     bool    `yaml:"popular"`
	Rating      float64 `yaml:"rating"`
}

// ProductRepo serves an immutable product list held in memory.
type ProductRepo struct {
	products []domain.Product
	byID     map[int]int
}

func NewProductRepo(products []domain.Product) (*ProductRepo, error) {
	r := &ProductRepo{
		products: make([]domain.Product, 0, len(products)),
		byID:     make(map[int]int, len(products)),
	}
	for _, p := range products {
		if p.ID <= 0 {
			return nil, fmt.Errorf("product %q: id must be positive: %w", p.Name, app.ErrInvalidInput)
		}
		if _, dup := r.byID[p.ID]; dup {
			return nil, fmt.Errorf("product %d: duplicate id: %w", p.ID, app.ErrInvalidInput)
		}
		if p.Price.IsNegative() {
			return nil, fmt.Errorf("product %d: negative price: %w", p.ID, app.ErrInvalidInput)
		}
		r.byID[p.ID] = len(r.products)
		r.products = append(r.products, p)
	}
	return r, nil
}

// NewDefaultProductRepo loads the menu bundled with the binary.
func NewDefaultProductRepo() (*ProductRepo, error) {
	products, err := Decode(bytes.NewReader(defaultMenu))
	if err != nil {
		return nil, err
	}
	return NewProductRepo(products)
}

// LoadFile loads a menu from a YAML file on disk.
func LoadFile(path string) (*ProductRepo, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	products, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("menu %s: %w", path, err)
	}
	return NewProductRepo(products)
}

func Decode(r io.Reader) ([]domain.Product, error) {
	var mf menuFile
	if err := yaml.NewDecoder(r).Decode(&mf); err != nil {
		return nil, fmt.Errorf("decode menu: %w", err)
	}

	out := make([]domain.Product, 0, len(mf.Products))
	for _, rec := range mf.Products {
		price, err := decimal.NewFromString(strings.TrimSpace(rec.Price))
		if err != nil {
			return nil, fmt.Errorf("product %d: invalid price %q: %w", rec.ID, rec.Price, app.ErrInvalidInput)
		}
		out = append(out, domain.Product{
			ID:          rec.ID,
			Name:        rec.Name,
			Description: rec.Description,
			Price:       price,
			Category:    strings.ToLower(strings.TrimSpace(rec.Category)),
			Image:       rec.Image,
			Popular:     rec.Popular,
			Rating:      rec.Rating,
		})
	}
	return out, nil
}

func (r *ProductRepo) Get(ctx context.Context, id int) (domain.Product, error) {
	idx, ok := r.byID[id]
	if !ok {
		return domain.Product{}, app.ErrNotFound
	}
	return r.products[idx], nil
}

func (r *ProductRepo) List(ctx context.Context) ([]domain.Product, error) {
	out := make([]domain.Product, len(r.products))
	copy(out, r.products)
	return out, nil
}
