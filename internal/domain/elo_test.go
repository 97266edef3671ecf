package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculateEloEqualRatings(t *testing.T) {
	assert.Equal(t, 1216, CalculateElo(1200, 1200, 1.0))
	assert.Equal(t, 1184, CalculateElo(1200, 1200, 0.0))
}

func TestCalculateEloFavoriteGainsLess(t *testing.T) {
	favoriteGain := CalculateElo(1400, 1000, 1.0) - 1400
	underdogGain := CalculateElo(1000, 1400, 1.0) - 1000

	assert.Equal(t, 2, favoriteGain)
	assert.Equal(t, 29, underdogGain)
	assert.Less(t, favoriteGain, underdogGain)
}

func TestCalculateEloNeverNegative(t *testing.T) {
	assert.Equal(t, 0, CalculateElo(0, 2000, 0.0))
}

func TestNewRatings(t *testing.T) {
	winner, loser := NewRatings(1200, 1200)
	assert.Equal(t, 1216, winner)
	assert.Equal(t, 1184, loser)

	winner, loser = NewRatings(1000, 1400)
	assert.Equal(t, 1029, winner)
	assert.Equal(t, 1370, loser)
}
