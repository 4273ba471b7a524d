package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAverageRating(t *testing.T) {
	assert.Equal(t, 0.0, AverageRating(0, 0))
	assert.Equal(t, 5.0, AverageRating(5, 1))
	assert.Equal(t, 4.0, AverageRating(8, 2))
	assert.Equal(t, 4.3, AverageRating(13, 3))
	assert.Equal(t, 3.7, AverageRating(11, 3))
}

func TestParseRole(t *testing.T) {
	r, err := ParseRole("seller")
	assert.NoError(t, err)
	assert.Equal(t, RoleSeller, r)

	_, err = ParseRole("guru")
	assert.Error(t, err)
	assert.False(t, Role("").Valid())
}
