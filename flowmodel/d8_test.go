package flowmodel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func planeTerrain(nx, ny int, cw float64, zfn func(x, y int) float64) *Terrain {
	co := gridCoords(nx, ny, cw)
	z := make(map[int]float64, nx*ny)
	for y := 0; y < ny; y++ {
		for x := 0; x < nx; x++ {
			z[y*nx+x] = zfn(x, y)
		}
	}
	return &Terrain{Coord: co, Z: z, Cw: cw, Nodata: -9999.}
}

func TestD8InclinedPlane(t *testing.T) {
	// plane dipping west: every cell drains to its western neighbor
	ter := planeTerrain(5, 5, 10., func(x, y int) float64 { return float64(x) })
	fm, err := New(ter)
	require.NoError(t, err)
	require.Equal(t, 25, fm.Nc)

	for i, cid := range fm.Cids {
		x := cid % 5
		if x == 0 {
			assert.Equal(t, -1, fm.Ds[i], "west edge cells are sinks")
			assert.Equal(t, 5., fm.Accum[i], "each west edge cell collects its row")
		} else {
			d, ok := fm.DownstreamCell(i)
			require.True(t, ok)
			assert.Equal(t, cid-1, fm.Cids[d])
		}
	}
}

func TestFillDepressionPit(t *testing.T) {
	// 3x3 rim at z=5 with one low outlet on the edge and a pit at centre
	ter := planeTerrain(3, 3, 10., func(x, y int) float64 {
		switch {
		case x == 1 && y == 1:
			return 0. // pit
		case x == 1 && y == 0:
			return 1. // outlet
		default:
			return 5.
		}
	})
	tf, nfill, err := ter.FillDepressions()
	require.NoError(t, err)
	assert.Equal(t, 1, nfill)
	assert.Greater(t, tf.Z[4], 1., "pit raised above the outlet")

	fm, err := New(ter)
	require.NoError(t, err)
	iout := fm.Mx[1] // cid 1 = (1,0)
	assert.Equal(t, -1, fm.Ds[iout])
	assert.Equal(t, 9., fm.Accum[iout], "whole raster drains the outlet")
}

func TestFillAllNodata(t *testing.T) {
	ter := &Terrain{Z: map[int]float64{}, Cw: 10., Nodata: -9999.}
	_, _, err := ter.FillDepressions()
	require.Error(t, err)
	var ce *ComputationError
	assert.ErrorAs(t, err, &ce)
}
