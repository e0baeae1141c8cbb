package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func table() *mat.Dense {
	return mat.NewDense(3, 4, []float64{
		1, 0.5, 2, 3,
		0, 1.5, 4, 5,
		1, 2.5, 6, 7,
	})
}

func TestNew(t *testing.T) {
	ds, err := New(table())
	require.NoError(t, err)

	assert.Equal(t, 3, ds.Len())
	assert.Equal(t, 3, ds.Width())
	assert.Equal(t, []float64{1, 0, 1}, ds.Labels())

	x, y, err := ds.Item(1)
	require.NoError(t, err)
	assert.Equal(t, []float64{1.5, 4, 5}, x)
	assert.Equal(t, 0.0, y)
}

func TestNew_TooFewColumns(t *testing.T) {
	_, err := New(mat.NewDense(2, 1, []float64{1, 0}))
	assert.Error(t, err)
}

func TestItem_OutOfRange(t *testing.T) {
	ds, err := New(table())
	require.NoError(t, err)

	for _, i := range []int{-1, 3, 100} {
		_, _, err := ds.Item(i)
		assert.ErrorIs(t, err, ErrIndexOutOfRange, "index %d", i)
	}
}

func TestItem_ReturnsCopy(t *testing.T) {
	ds, err := New(table())
	require.NoError(t, err)

	x, _, err := ds.Item(0)
	require.NoError(t, err)
	x[0] = 99

	again, _, err := ds.Item(0)
	require.NoError(t, err)
	assert.Equal(t, 0.5, again[0])
}

func TestSubset(t *testing.T) {
	ds, err := New(table())
	require.NoError(t, err)

	sub, err := ds.Subset([]int{2, 0})
	require.NoError(t, err)
	assert.Equal(t, 2, sub.Len())
	assert.Equal(t, []float64{1, 1}, sub.Labels())

	x, _, err := sub.Item(0)
	require.NoError(t, err)
	assert.Equal(t, []float64{2.5, 6, 7}, x)

	_, err = ds.Subset([]int{0, 5})
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
}

func TestFromRecords(t *testing.T) {
	ds, err := FromRecords([][]float64{{1, 2}, {3, 4}}, []float64{0, 1})
	require.NoError(t, err)
	assert.Equal(t, 2, ds.Width())

	_, err = FromRecords([][]float64{{1, 2}, {3}}, []float64{0, 1})
	assert.Error(t, err, "ragged records")

	_, err = FromRecords([][]float64{{1}}, []float64{0, 1})
	assert.Error(t, err, "label count mismatch")
}
