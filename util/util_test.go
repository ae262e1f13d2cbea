package util

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSafeRatio(t *testing.T) {
	assert.Equal(t, 0.5, SafeRatio(1, 2))
	assert.True(t, math.IsNaN(SafeRatio(3, 0)), "zero denominator must stay undefined")
	assert.True(t, math.IsNaN(SafeRatio(0, 0)))
}

func TestDistinctCount(t *testing.T) {
	assert.Equal(t, 2, DistinctCount([]string{"a", "b", "a", "", ""}))
	assert.Equal(t, 0, DistinctCount(nil))
}

func TestSortedKeys(t *testing.T) {
	m := map[string]int{"b": 1, "a": 2, "c": 3}
	assert.Equal(t, []string{"a", "b", "c"}, SortedKeys(m))
}
