package survey

import "fmt"

// Rating bounds, inclusive.
const (
	MinRating = 0
	MaxRating = 100
)

// Rating is a score on the 0–100 scale used by every rating column.
type Rating struct {
	value int16
}

// NewRating validates v and returns it as a Rating.
func NewRating(v int) (Rating, error) {
	if v < MinRating || v > MaxRating {
		return Rating{}, fmt.Errorf("%w: %d", ErrRatingOutOfRange, v)
	}
	return Rating{value: int16(v)}, nil
}

// MustRating is NewRating for constants; it panics on an out-of-range value.
func MustRating(v int) Rating {
	r, err := NewRating(v)
	if err != nil {
		panic(err)
	}
	return r
}

// Int returns the rating as an int.
func (r Rating) Int() int { return int(r.value) }

// Int16 returns the rating in its storage width.
func (r Rating) Int16() int16 { return r.value }

// String implements fmt.Stringer.
func (r Rating) String() string { return fmt.Sprintf("%d", r.value) }

// ReconstructRating wraps a stored value without validation.
func ReconstructRating(v int16) Rating { return Rating{value: v} }
