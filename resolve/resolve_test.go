package resolve

import (
	"testing"

	"github.com/maseology/catchment/flowmodel"
	"github.com/maseology/catchment/pour"
	"github.com/maseology/mmaths"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// combModel builds an nx by ny grid where every row drains west into a
// trunk running down column 0 to the outlet at (0,0). cid = y*nx + x.
// The drainage area of (x,y) is the row tail x'>=x for x>0, and all rows
// y'>=y for trunk cells.
func combModel(t *testing.T, nx, ny int) *flowmodel.FlowModel {
	t.Helper()
	cw := 10.
	co := make(map[int]mmaths.Point, nx*ny)
	cids := make([]int, 0, nx*ny)
	ds := make(map[int]int, nx*ny)
	for y := 0; y < ny; y++ {
		for x := 0; x < nx; x++ {
			cid := y*nx + x
			co[cid] = mmaths.Point{X: (float64(x) + .5) * cw, Y: (float64(y) + .5) * cw}
			cids = append(cids, cid)
			switch {
			case x > 0:
				ds[cid] = cid - 1
			case y > 0:
				ds[cid] = cid - nx
			default:
				ds[cid] = -1
			}
		}
	}
	fm, err := flowmodel.FromArrays(cids, ds, co, cw)
	require.NoError(t, err)
	return fm
}

func snapAt(fm *flowmodel.FlowModel, name string, cid int) pour.Snapped {
	return pour.Snapped{Point: pour.Point{Name: name}, I: fm.Mx[cid], Cid: cid}
}

func labeledCells(fm *flowmodel.FlowModel, l []int, id int) map[int]bool {
	o := make(map[int]bool)
	for i, v := range l {
		if v == id {
			o[fm.Cids[i]] = true
		}
	}
	return o
}

func TestResolveDisjoint(t *testing.T) {
	fm := combModel(t, 6, 6)
	r := &Resolver{FM: fm, Nworkers: 1}
	// row tails of rows 1 and 4
	lbl, err := r.Resolve([]pour.Snapped{snapAt(fm, "a", 1*6+3), snapAt(fm, "b", 4*6+3)})
	require.NoError(t, err)
	require.Equal(t, 2, lbl.Nl)

	// the labeled area partitions with no overlap
	na := 0
	for _, v := range lbl.L {
		if v > 0 {
			na++
		}
	}
	assert.Equal(t, 6, na)
	assert.Equal(t, 3, lbl.Area[1])
	assert.Equal(t, 3, lbl.Area[2])

	ca := labeledCells(fm, lbl.L, 1)
	for _, cid := range []int{9, 10, 11} { // (3..5, 1)
		assert.True(t, ca[cid])
	}
	assert.Equal(t, []string{"a"}, lbl.Names[1])
	assert.Equal(t, []string{"b"}, lbl.Names[2])
}

func TestResolveCoincident(t *testing.T) {
	fm := combModel(t, 6, 6)
	r := &Resolver{FM: fm, Nworkers: 1}
	c := 2*6 + 2
	lbl, err := r.Resolve([]pour.Snapped{snapAt(fm, "beta", c), snapAt(fm, "alph", c)})
	require.NoError(t, err)
	require.Equal(t, 1, lbl.Nl, "coincident points collapse into one label")
	assert.Equal(t, []string{"alph", "beta"}, lbl.Names[1])
	assert.Equal(t, 4, lbl.Area[1], "combined drainage area, row tail x>=2")
	assert.Equal(t, fm.Mx[c], lbl.Outlet[1])
}

func TestResolveNestedMergeOutermost(t *testing.T) {
	fm := combModel(t, 6, 6)
	r := &Resolver{FM: fm, Policy: MergeOutermost, Nworkers: 1}
	a, b := 2*6+1, 2*6+4 // b drains through a
	lbl, err := r.Resolve([]pour.Snapped{snapAt(fm, "A", a), snapAt(fm, "B", b)})
	require.NoError(t, err)
	require.Equal(t, 1, lbl.Nl, "nested outlet merges into its outermost ancestor")
	assert.Equal(t, []string{"A", "B"}, lbl.Names[1])
	assert.Equal(t, 5, lbl.Area[1], "merged area equals the ancestor's")
	assert.Equal(t, fm.Mx[a], lbl.Outlet[1])

	// every cell of B's drainage carries A's label
	cb := labeledCells(fm, lbl.L, 1)
	for _, cid := range []int{2*6 + 4, 2*6 + 5} {
		assert.True(t, cb[cid])
	}
}

func TestResolveNestedKeepNested(t *testing.T) {
	fm := combModel(t, 6, 6)
	r := &Resolver{FM: fm, Policy: KeepNested, Nworkers: 1}
	a, b := 2*6+1, 2*6+4
	lbl, err := r.Resolve([]pour.Snapped{snapAt(fm, "A", a), snapAt(fm, "B", b)})
	require.NoError(t, err)
	require.Equal(t, 2, lbl.Nl, "nested outlet kept as a distinct sub-watershed")

	la, lc := lbl.L[fm.Mx[a]], lbl.L[fm.Mx[b]]
	assert.NotEqual(t, la, lc)
	assert.Equal(t, 3, lbl.Area[la], "ancestor keeps only its residual cells")
	assert.Equal(t, 2, lbl.Area[lc])
	assert.Equal(t, []string{"A"}, lbl.Names[la])
	assert.Equal(t, []string{"B"}, lbl.Names[lc])
}

func TestResolveDeterministic(t *testing.T) {
	fm := combModel(t, 8, 8)
	batch := []pour.Snapped{
		snapAt(fm, "a", 1*8+2),
		snapAt(fm, "b", 3*8+5),
		snapAt(fm, "c", 3*8+1), // contains b
		snapAt(fm, "d", 6*8+4),
	}
	rev := make([]pour.Snapped, len(batch))
	for i, s := range batch {
		rev[len(batch)-1-i] = s
	}

	r := &Resolver{FM: fm, Nworkers: 1}
	l1, err := r.Resolve(batch)
	require.NoError(t, err)
	l2, err := r.Resolve(rev)
	require.NoError(t, err)
	assert.Equal(t, l1.L, l2.L, "labeling independent of input ordering")
	assert.Equal(t, l1.Names, l2.Names)

	rc := &Resolver{FM: fm, Nworkers: 4}
	l3, err := rc.Resolve(batch)
	require.NoError(t, err)
	assert.Equal(t, l1.L, l3.L, "labeling independent of worker completion order")
}

func TestResolveEmptyBatch(t *testing.T) {
	fm := combModel(t, 4, 4)
	r := &Resolver{FM: fm, Nworkers: 1}
	_, err := r.Resolve(nil)
	require.Error(t, err)
}
