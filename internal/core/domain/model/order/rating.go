package order

import "fmt"

const (
	RatingMin = 1
	RatingMax = 5
)

// Rating is the requester's score for finished work.
type Rating int

// NewRating returns ErrInvalidRating unless score is within [RatingMin, RatingMax].
func NewRating(score int) (Rating, error) {
	r := Rating(score)
	if err := r.Validate(); err != nil {
		return 0, err
	}
	return r, nil
}

func (r Rating) Validate() error {
	if r < RatingMin || r > RatingMax {
		return fmt.Errorf("%w: %d is outside %d..%d", ErrInvalidRating, int(r), RatingMin, RatingMax)
	}
	return nil
}

func (r Rating) Int() int {
	return int(r)
}
