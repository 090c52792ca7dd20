package flowmodel

import (
	"sort"

	"github.com/maseology/goHydro/grid"
	"github.com/maseology/mmaths"
)

// FlowModel is a read-only, topologically ordered view of a D8
// flow-direction grid. All per-cell arrays are 0-based indexed; Cids is
// the key back to grid cell ids.
type FlowModel struct {
	GD    *grid.Definition     // grid definition (may be nil when built from arrays)
	Coord map[int]mmaths.Point // cell id to cell centroid
	Cids  []int                // topologically ordered grid cell ids, upstream first
	Ds    []int                // downslope cell index, -1 = sink
	USlp  [][]int              // upslope cell indices
	Accum []float64            // contributing cell count, including self
	Mx    map[int]int          // grid cell id to array index
	Cw    float64              // uniform cell width
	Nc    int                  // number of model cells
}

// FromArrays builds a FlowModel from a downslope topology given in grid
// cell ids. ds maps cell id to its receiving cell id (<0 = sink).
func FromArrays(cids []int, ds map[int]int, coord map[int]mmaths.Point, cw float64) (*FlowModel, error) {
	nc := len(cids)
	cids = append(make([]int, 0, nc), cids...) // sorted copy keeps output independent of input ordering
	sort.Ints(cids)
	mx := make(map[int]int, nc)
	for i, cid := range cids {
		mx[cid] = i
	}
	dsx := make([]int, nc)
	for i, cid := range cids {
		if d, ok := ds[cid]; ok && d >= 0 {
			j, ok := mx[d]
			if !ok {
				return nil, &ComputationError{"FromArrays", "downslope cell outside model domain"}
			}
			dsx[i] = j
		} else {
			dsx[i] = -1
		}
	}

	order, err := topoOrder(dsx)
	if err != nil {
		return nil, err
	}
	// re-sequence to topological order, upstream first
	ncids := make([]int, nc)
	for i, o := range order {
		ncids[i] = cids[o]
	}
	mx = make(map[int]int, nc)
	for i, cid := range ncids {
		mx[cid] = i
	}
	ndsx := make([]int, nc)
	for i, cid := range ncids {
		if d, ok := ds[cid]; ok && d >= 0 {
			ndsx[i] = mx[d]
		} else {
			ndsx[i] = -1
		}
	}

	fm := &FlowModel{
		Coord: coord,
		Cids:  ncids,
		Ds:    ndsx,
		USlp:  upslopes(ndsx),
		Mx:    mx,
		Cw:    cw,
		Nc:    nc,
	}
	fm.Accum = accumulate(ndsx)
	return fm, nil
}

// DownstreamCell returns the receiving cell index, or false for a sink.
func (fm *FlowModel) DownstreamCell(i int) (int, bool) {
	if d := fm.Ds[i]; d >= 0 {
		return d, true
	}
	return -1, false
}

// UpslopeCells returns the indices of cells draining directly to cell i.
func (fm *FlowModel) UpslopeCells(i int) []int { return fm.USlp[i] }

func upslopes(ds []int) [][]int {
	us := make([][]int, len(ds))
	for i, d := range ds {
		if d >= 0 {
			us[d] = append(us[d], i)
		}
	}
	return us
}

// accumulate sweeps the topologically ordered downslope array, counting
// contributing cells (including self).
func accumulate(ds []int) []float64 {
	a := make([]float64, len(ds))
	for i := range a {
		a[i] = 1.
	}
	for i, d := range ds {
		if d >= 0 {
			a[d] += a[i]
		}
	}
	return a
}

// topoOrder returns indices ordered such that every cell precedes its
// downslope receiver. Ties break on ascending index for determinism.
func topoOrder(ds []int) ([]int, error) {
	nc := len(ds)
	nin := make([]int, nc)
	for _, d := range ds {
		if d >= 0 {
			nin[d]++
		}
	}
	q := make([]int, 0, nc)
	for i, n := range nin {
		if n == 0 {
			q = append(q, i)
		}
	}
	sort.Ints(q)
	o := make([]int, 0, nc)
	for len(q) > 0 {
		i := q[0]
		q = q[1:]
		o = append(o, i)
		if d := ds[i]; d >= 0 {
			nin[d]--
			if nin[d] == 0 {
				q = append(q, d)
			}
		}
	}
	if len(o) != nc {
		return nil, &ComputationError{"topoOrder", "cycle detected in flow directions"}
	}
	return o, nil
}
