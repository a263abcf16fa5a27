package api

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEstimateReputationIsStable(t *testing.T) {
	r1, n1 := EstimateReputation("Cake & Co", "Mumbai")
	r2, n2 := EstimateReputation("  cake & co ", "MUMBAI")

	assert.Equal(t, r1, r2)
	assert.Equal(t, n1, n2)
}

func TestEstimateReputationRanges(t *testing.T) {
	names := []string{"Cake & Co", "Joe's Diner", "Blue Bottle", "A1 Tyres", "Green Leaf Cafe", "Harbor Books"}
	locations := []string{"Mumbai", "Pune", "Austin", "Berlin", "Nairobi"}

	for _, name := range names {
		for _, location := range locations {
			rating, reviews := EstimateReputation(name, location)
			assert.GreaterOrEqual(t, rating, minRating)
			assert.LessOrEqual(t, rating, maxRating)
			assert.Equal(t, rating, math.Round(rating*10)/10, "rating has one decimal")
			assert.GreaterOrEqual(t, reviews, minReviews)
			assert.LessOrEqual(t, reviews, maxReviews)
		}
	}
}
