package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPartitionMapEvenSplit(t *testing.T) {
	pm := NewPartitionMap(4, 100)
	for n := 0; n < 4; n++ {
		assert.Equal(t, 25, pm.GetBucketDimension(n))
	}
	min, max := pm.GetBucketRange(2)
	assert.Equal(t, 50, min)
	assert.Equal(t, 75, max)
}

func TestPartitionMapRemainderSpreadOverFirstBuckets(t *testing.T) {
	pm := NewPartitionMap(3, 10)
	var total int
	for n := 0; n < 3; n++ {
		total += pm.GetBucketDimension(n)
	}
	assert.Equal(t, 10, total)
	// Remainder of 1 goes to the first bucket.
	assert.Equal(t, 4, pm.GetBucketDimension(0))
	assert.Equal(t, 3, pm.GetBucketDimension(1))
	assert.Equal(t, 3, pm.GetBucketDimension(2))
}
