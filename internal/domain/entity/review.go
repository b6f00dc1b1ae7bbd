package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Rating bounds accepted for a review.
const (
	MinRating = 1
	MaxRating = 5
)

// Review is a customer's rating and comment on an item. One per (item, email).
type Review struct {
	ID        uint      `json:"id"`
	ItemID    uint      `json:"item_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Text      string    `json:"text"`
	Rating    int       `json:"rating"`
	DateAdded time.Time `json:"date_added"`
}

// RatingSummary is the histogram and mean of an item's ratings.
type RatingSummary struct {
	Histogram [MaxRating]int `json:"histogram"` // Histogram[0] counts rating 1.
	Average   float64        `json:"average"`
	Total     int            `json:"total"`
}

// ValidRating reports whether rating lies in [MinRating, MaxRating].
func ValidRating(rating int) bool {
	return rating >= MinRating && rating <= MaxRating
}

// SummarizeRatings aggregates reviews. An empty set yields a zero summary.
func SummarizeRatings(reviews []*Review) RatingSummary {
	var summary RatingSummary
	sum := 0

	for _, review := range reviews {
		if !ValidRating(review.Rating) {
			continue
		}
		summary.Histogram[review.Rating-1]++
		summary.Total++
		sum += review.Rating
	}

	if summary.Total == 0 {
		return summary
	}

	avg := decimal.NewFromInt(int64(sum)).
		Div(decimal.NewFromInt(int64(summary.Total))).
		RoundBank(1)
	summary.Average = avg.InexactFloat64()

	return summary
}

// Count returns how many reviews gave the rating, or 0 if it is out of range.
func (s RatingSummary) Count(rating int) int {
	if !ValidRating(rating) {
		return 0
	}

	return s.Histogram[rating-1]
}
