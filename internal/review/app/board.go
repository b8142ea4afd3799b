package app

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/dwikikusuma/coffee-order/internal/review/domain"
	"github.com/dwikikusuma/coffee-order/pkg/clock"
	"github.com/google/uuid"
)

var ErrInvalidInput = errors.New("invalid input")

// Board keeps the reviews submitted during the session, newest first.
type Board struct {
	mu      sync.Mutex
	clock   clock.Clock
	reviews []domain.Review
	log     *slog.Logger
}

func NewBoard(clk clock.Clock, log *slog.Logger) *Board {
	if log == nil {
		log = slog.Default()
	}
	return &Board{clock: clk, log: log}
}

func (b *Board) Submit(rating int, comment, product string) (domain.Review, error) {
	comment = strings.TrimSpace(comment)
	if rating < domain.MinRating || rating > domain.MaxRating {
		return domain.Review{}, fmt.Errorf("rating %d out of range: %w", rating, ErrInvalidInput)
	}
	if comment == "" {
		return domain.Review{}, fmt.Errorf("comment is required: %w", ErrInvalidInput)
	}
	product = strings.TrimSpace(product)
	if product == "" {
		product = domain.DefaultProduct
	}

	r := domain.Review{
		ID:        uuid.NewString(),
		Author:    domain.DefaultAuthor,
		Rating:    rating,
		Comment:   comment,
		Product:   product,
		CreatedAt: b.clock.Now(),
	}

	b.mu.Lock()
	b.reviews = append([]domain.Review{r}, b.reviews...)
	b.mu.Unlock()

	b.log.Info("review submitted", slog.String("id", r.ID), slog.Int("rating", rating))
	return r, nil
}

// ToggleLike flips the like state of a review; unknown ids are ignored.
func (b *Board) ToggleLike(id string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := range b.reviews {
		r := &b.reviews[i]
		if r.ID != id {
			continue
		}
		if r.Liked {
			r.Likes--
		} else {
			r.Likes++
		}
		r.Liked = !r.Liked
		return
	}
}

// List returns reviews with the given rating, or all of them for 0.
func (b *Board) List(rating int) []domain.Review {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]domain.Review, 0, len(b.reviews))
	for _, r := range b.reviews {
		if rating == 0 || r.Rating == rating {
			out = append(out, r)
		}
	}
	return out
}

func (b *Board) AverageRating() float64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.reviews) == 0 {
		return 0
	}
	sum := 0
	for _, r := range b.reviews {
		sum += r.Rating
	}
	return float64(sum) / float64(len(b.reviews))
}

// Distribution counts reviews per star, from five down to one.
func (b *Board) Distribution() []domain.RatingBucket {
	b.mu.Lock()
	defer b.mu.Unlock()
	counts := make(map[int]int, domain.MaxRating)
	for _, r := range b.reviews {
		counts[r.Rating]++
	}
	out := make([]domain.RatingBucket, 0, domain.MaxRating)
	for rating := domain.MaxRating; rating >= domain.MinRating; rating-- {
		bucket := domain.RatingBucket{Rating: rating, Count: counts[rating]}
		if len(b.reviews) > 0 {
			bucket.Percentage = float64(bucket.Count) / float64(len(b.reviews)) * 100
		}
		out = append(out, bucket)
	}
	return out
}
