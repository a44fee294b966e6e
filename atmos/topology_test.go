package atmos

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTopologyNeighborsWrapAroundRing(t *testing.T) {
	topo := NewTopology(4, 100)
	left, right := topo.Neighbors(0)
	assert.Equal(t, 3, left)
	assert.Equal(t, 1, right)

	left, right = topo.Neighbors(3)
	assert.Equal(t, 2, left)
	assert.Equal(t, 0, right)
}

func TestTopologyColumnRangeCoversFullGrid(t *testing.T) {
	topo := NewTopology(3, 100)
	total := 0
	prevEnd := 0
	for r := 0; r < 3; r++ {
		xBeg, xEnd := topo.ColumnRange(r)
		assert.Equal(t, prevEnd, xBeg)
		total += topo.LocalNx(r)
		prevEnd = xEnd
	}
	assert.Equal(t, 100, total)
	assert.Equal(t, 100, prevEnd)
}

func TestTopologySingleRankOwnsWholeGrid(t *testing.T) {
	topo := NewTopology(1, 64)
	left, right := topo.Neighbors(0)
	assert.Equal(t, 0, left)
	assert.Equal(t, 0, right)
	assert.Equal(t, 64, topo.LocalNx(0))
}
