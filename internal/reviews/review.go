// Package reviews filters and orders course review cards by semester,
// instructor and average score.
package reviews

import (
	"slices"
	"strings"
)

// Filter values.
const (
	All       = "all"
	HighToLow = "high-to-low"
	LowToHigh = "low-to-high"
)

type Review struct {
	Semester   string    `json:"semester"`
	Instructor string    `json:"instructor"`
	Scores     []float64 `json:"scores"`
	Title      string    `json:"title,omitempty"`
	Body       string    `json:"body,omitempty"`

	// Visible is the outcome of the last Filter call.
	Visible bool `json:"visible"`
}

// Criteria selects which reviews are shown and in which order. Empty
// Semester or Instructor behaves like All.
type Criteria struct {
	Semester   string
	Instructor string
	Order      string
}

// AverageRating is the arithmetic mean of the review's scores, 0 when it has
// none.
func AverageRating(r Review) float64 {
	if len(r.Scores) == 0 {
		return 0
	}
	var total float64
	for _, s := range r.Scores {
		total += s
	}
	return total / float64(len(r.Scores))
}

// Matches reports whether r passes the semester and instructor filters.
// A filter matches when it is All or a substring of the review's field.
func (c Criteria) Matches(r Review) bool {
	return matches(c.Semester, r.Semester) && matches(c.Instructor, r.Instructor)
}

func matches(filter, value string) bool {
	return filter == "" || filter == All || strings.Contains(value, filter)
}

// Filter marks every review visible or hidden according to c and returns
// them ordered by c.Order. Hidden reviews are kept. The input is not
// modified.
func Filter(reviews []Review, c Criteria) []Review {
	out := make([]Review, len(reviews))
	for i, r := range reviews {
		r.Visible = c.Matches(r)
		out[i] = r
	}
	Sort(out, c.Order)
	return out
}

// Sort orders reviews in place by average rating, descending for HighToLow
// and ascending for any other order. Equal averages keep their relative
// order.
func Sort(reviews []Review, order string) {
	desc := order == HighToLow
	slices.SortStableFunc(reviews, func(a, b Review) int {
		x, y := AverageRating(a), AverageRating(b)
		if desc {
			x, y = y, x
		}
		switch {
		case x < y:
			return -1
		case x > y:
			return 1
		default:
			return 0
		}
	})
}

// Visible returns only the reviews marked visible.
func Visible(reviews []Review) []Review {
	out := make([]Review, 0, len(reviews))
	for _, r := range reviews {
		if r.Visible {
			out = append(out, r)
		}
	}
	return out
}
