package scoring

import "errors"

var (
	ErrInvalidRating       = errors.New("rating must be an integer between 1 and 5")
	ErrTaskAlreadyComplete = errors.New("task already complete")
)
