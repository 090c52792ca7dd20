package flowmodel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStreamLinks(t *testing.T) {
	// two headwater chains joining at cell 4, trunk 4 -> 5 -> 6
	//   0 -> 1 -> 4
	//   2 -> 3 -> 4
	cids := []int{0, 1, 2, 3, 4, 5, 6}
	ds := map[int]int{0: 1, 1: 4, 2: 3, 3: 4, 4: 5, 5: 6, 6: -1}
	fm, err := FromArrays(cids, ds, gridCoords(7, 1, 10.), 10.)
	require.NoError(t, err)

	// accum: 0,2 = 1; 1,3 = 2; 4 = 5; 5 = 6; 6 = 7
	strm := fm.StreamGrid(2.)
	nstrm := 0
	for _, b := range strm {
		if b {
			nstrm++
		}
	}
	assert.Equal(t, 5, nstrm)

	lnk, nl := fm.StreamLinks(2.)
	require.Equal(t, 3, nl, "two tributaries and the trunk below their junction")
	assert.Equal(t, lnk[fm.Mx[4]], lnk[fm.Mx[6]], "trunk cells share a link")
	assert.NotEqual(t, lnk[fm.Mx[1]], lnk[fm.Mx[3]])
	assert.Equal(t, -1, lnk[fm.Mx[0]], "below-threshold cell carries no link")

	outs := fm.LinkOutlets(lnk, nl)
	require.Len(t, outs, 3)
	assert.Equal(t, fm.Mx[6], outs[lnk[fm.Mx[4]]])
	assert.Equal(t, fm.Mx[1], outs[lnk[fm.Mx[1]]])
	assert.Equal(t, fm.Mx[3], outs[lnk[fm.Mx[3]]])
}
