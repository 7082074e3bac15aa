package models

import "fmt"

// Rating is the censorship classification of a video.
type Rating string

const (
	RatingER Rating = "ER"
	RatingL  Rating = "L"
	Rating10 Rating = "10"
	Rating12 Rating = "12"
	Rating14 Rating = "14"
	Rating16 Rating = "16"
	Rating18 Rating = "18"
)

var ratings = []Rating{RatingER, RatingL, Rating10, Rating12, Rating14, Rating16, Rating18}

func ParseRating(s string) (Rating, error) {
	for _, r := range ratings {
		if string(r) == s {
			return r, nil
		}
	}
	return "", fmt.Errorf("%w: unknown rating %q", ErrInvalidArgument, s)
}
