package util

import "errors"

var (
	ErrInvalidCourseID     = errors.New("invalid course id")
	ErrRecommendationStore = errors.New("recommendation store failure")
)
