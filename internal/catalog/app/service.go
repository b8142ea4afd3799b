package app

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/dwikikusuma/coffee-order/internal/catalog/domain"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
)

type Service struct {
	repo ProductRepo
}

func NewService(repo ProductRepo) *Service {
	return &Service{
		repo: repo,
	}
}

func (s *Service) GetProduct(ctx context.Context, id int) (domain.Product, error) {
	if id <= 0 {
		return domain.Product{}, ErrInvalidInput
	}
	return s.repo.Get(ctx, id)
}

// ListProducts filters by category and orders the result. An empty category
// or "all" matches everything; an unknown sort falls back to popularity.
func (s *Service) ListProducts(ctx context.Context, category string, order domain.SortOrder) ([]domain.Product, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	category = strings.ToLower(strings.TrimSpace(category))
	out := make([]domain.Product, 0, len(all))
	for _, p := range all {
		if category == "" || category == domain.CategoryAll || p.Category == category {
			out = append(out, p)
		}
	}

	switch order {
	case domain.SortPriceLow:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price.LessThan(out[j].Price) })
	case domain.SortPriceHigh:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price.GreaterThan(out[j].Price) })
	case domain.SortRating:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Rating > out[j].Rating })
	default:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Popular && !out[j].Popular })
	}
	return out, nil
}

// Categories returns the distinct categories in catalog order.
func (s *Service) Categories(ctx context.Context) ([]string, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]struct{})
	var out []string
	for _, p := range all {
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		out = append(out, p.Category)
	}
	return out, nil
}

// MostPopular picks the highest rated popular product, used by quick order.
func (s *Service) MostPopular(ctx context.Context) (domain.Product, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return domain.Product{}, err
	}
	var best domain.Product
	found := false
	for _, p := range all {
		if !p.Popular {
			continue
		}
		if !found || p.Rating > best.Rating {
			best = p
			found = true
		}
	}
	if !found {
		return domain.Product{}, ErrNotFound
	}
	return best, nil
}
