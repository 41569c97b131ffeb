package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/coursecomment/coursecomment/internal/reviews"
)

// Reviews loads review cards from an HTML file and prints them filtered and
// sorted. Arguments: <file> [semester] [instructor] [order]; omitted
// filters mean "all" and the default order is low to high.
func (a *App) Reviews(_ context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("review file is required")
	}
	crit, err := reviewCriteria(args[1:])
	if err != nil {
		return err
	}
	return PrintReviewsFile(a.out, args[0], crit)
}

func reviewCriteria(args []string) (reviews.Criteria, error) {
	if len(args) > 3 {
		return reviews.Criteria{}, fmt.Errorf("too many arguments")
	}
	c := reviews.Criteria{Semester: reviews.All, Instructor: reviews.All, Order: reviews.LowToHigh}
	if len(args) > 0 {
		c.Semester = args[0]
	}
	if len(args) > 1 {
		c.Instructor = args[1]
	}
	if len(args) > 2 {
		c.Order = args[2]
	}
	return c, nil
}

// PrintReviewsFile parses the review page at path and writes the reviews
// matching c to w.
func PrintReviewsFile(w io.Writer, path string, c reviews.Criteria) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	rs, err := reviews.ParseCards(f)
	if err != nil {
		return err
	}
	fmt.Fprint(w, renderReviews(reviews.Filter(rs, c)))
	return nil
}
