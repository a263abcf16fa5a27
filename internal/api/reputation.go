package api

import (
	"hash/fnv"
	"math"
	"strings"
)

const (
	minRating  = 3.5
	maxRating  = 5.0
	minReviews = 10
	maxReviews = 999
)

// EstimateReputation derives a stable rating and review count for a
// business. The same name and location, compared case-insensitively and
// ignoring surrounding space, always produce the same numbers.
func EstimateReputation(name, location string) (float64, int) {
	h := fnv.New64a()
	h.Write([]byte(strings.ToLower(strings.TrimSpace(name))))
	h.Write([]byte{0})
	h.Write([]byte(strings.ToLower(strings.TrimSpace(location))))
	sum := h.Sum64()

	steps := uint64(math.Round((maxRating-minRating)*10)) + 1
	rating := minRating + float64(sum%steps)/10
	rating = math.Round(rating*10) / 10

	reviews := minReviews + int((sum>>16)%uint64(maxReviews-minReviews+1))
	return rating, reviews
}
