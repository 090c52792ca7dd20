package flowmodel

import (
	"testing"

	"github.com/maseology/mmaths"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// gridCoords lays out an nx by ny lattice of cell centroids, cid = y*nx+x.
func gridCoords(nx, ny int, cw float64) map[int]mmaths.Point {
	c := make(map[int]mmaths.Point, nx*ny)
	for y := 0; y < ny; y++ {
		for x := 0; x < nx; x++ {
			c[y*nx+x] = mmaths.Point{X: (float64(x) + .5) * cw, Y: (float64(y) + .5) * cw}
		}
	}
	return c
}

func TestFromArraysTopology(t *testing.T) {
	// chain 0 -> 1 -> 2 with tributary 3 -> 1
	cids := []int{0, 1, 2, 3}
	ds := map[int]int{0: 1, 1: 2, 2: -1, 3: 1}
	fm, err := FromArrays(cids, ds, gridCoords(2, 2, 10.), 10.)
	require.NoError(t, err)

	// every cell precedes its receiver
	for i, d := range fm.Ds {
		if d >= 0 {
			assert.Less(t, i, d)
		}
	}

	i2 := fm.Mx[2]
	assert.Equal(t, -1, fm.Ds[i2])
	assert.Equal(t, 4., fm.Accum[i2])
	assert.Equal(t, 3., fm.Accum[fm.Mx[1]])
	assert.Equal(t, 1., fm.Accum[fm.Mx[0]])
	assert.Len(t, fm.UpslopeCells(fm.Mx[1]), 2)

	d, ok := fm.DownstreamCell(fm.Mx[0])
	require.True(t, ok)
	assert.Equal(t, fm.Mx[1], d)
	_, ok = fm.DownstreamCell(i2)
	assert.False(t, ok)
}

func TestFromArraysCycle(t *testing.T) {
	cids := []int{0, 1}
	ds := map[int]int{0: 1, 1: 0}
	_, err := FromArrays(cids, ds, gridCoords(2, 1, 10.), 10.)
	require.Error(t, err)
	var ce *ComputationError
	assert.ErrorAs(t, err, &ce)
}

func TestFromArraysDeterministic(t *testing.T) {
	ds := map[int]int{0: 1, 1: 2, 2: -1, 3: 1}
	co := gridCoords(2, 2, 10.)
	a, err := FromArrays([]int{0, 1, 2, 3}, ds, co, 10.)
	require.NoError(t, err)
	b, err := FromArrays([]int{3, 2, 1, 0}, ds, co, 10.)
	require.NoError(t, err)
	assert.Equal(t, a.Cids, b.Cids)
	assert.Equal(t, a.Ds, b.Ds)
	assert.Equal(t, a.Accum, b.Accum)
}
