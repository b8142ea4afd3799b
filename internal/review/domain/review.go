package domain

import "time"

const (
	MinRating = 1
	MaxRating = 5

	DefaultProduct = "General"
	DefaultAuthor  = "Current user"
)

type Review struct {
	ID        string    `json:"id"`
	Author    string    `json:"author"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	Product   string    `json:"product"`
	Likes     int       `json:"likes"`
	Liked     bool      `json:"liked"`
	CreatedAt time.Time `json:"created_at"`
}

type RatingBucket struct {
	Rating     int     `json:"rating"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}
