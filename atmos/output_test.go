package atmos

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNoopWriterDiscardsSnapshotsWithoutError(t *testing.T) {
	var w Writer = NoopWriter{}
	assert.NoError(t, w.WriteSnapshot(1.0, nil, nil, nil, nil))
	assert.NoError(t, w.Close())
}

func TestNetCDFWriterWritesSnapshotsAndCloses(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.nc")
	w, err := NewNetCDFWriter(path, 4, 3)
	assert.NoError(t, err)

	field := [][]float64{
		{0, 0, 0},
		{1, 1, 1},
		{2, 2, 2},
		{3, 3, 3},
	}
	assert.NoError(t, w.WriteSnapshot(0.0, field, field, field, field))
	assert.NoError(t, w.WriteSnapshot(1.5, field, field, field, field))
	assert.Equal(t, 2, w.recs)
	assert.NoError(t, w.Close())
}
