// Package resolve converts a batch of snapped pour points into a single
// consistent labeling of the flow model.
package resolve

import (
	"fmt"
	"sort"

	"github.com/maseology/catchment/flowmodel"
	"github.com/maseology/catchment/pour"
)

// Resolver labels the flow model cells draining to a batch of pour points.
// The flow model is shared read-only; per-point membership grids are held
// one per worker.
type Resolver struct {
	FM           *flowmodel.FlowModel
	Policy       Policy
	Nworkers     int // membership fills run concurrently when > 1
	ShowProgress bool
}

// Labels is the resolved watershed label raster. Every cell belongs to at
// most one label; cells draining to no pour point hold -1.
type Labels struct {
	L      []int            // per flow model cell index
	Names  map[int][]string // label to merged pour point identifiers, sorted
	Outlet map[int]int      // label to outlet cell index
	Area   map[int]int      // label to labeled cell count
	Nl     int
}

// IDs returns the distinct label ids in ascending order.
func (l *Labels) IDs() []int {
	ids := make([]int, 0, len(l.Names))
	for id := range l.Names {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

type candidate struct {
	cell   int      // snapped outlet cell index
	names  []string // pour point identifiers, coincident points collapsed
	member []bool   // drainage membership, transient
	area   int
}

// Resolve computes the watershed label raster for a batch of snapped pour
// points. Coincident points collapse into one candidate immediately;
// nesting is resolved after all memberships are computed (merge barrier),
// so worker completion order never affects the result.
func (r *Resolver) Resolve(snapped []pour.Snapped) (*Labels, error) {
	if len(snapped) == 0 {
		return nil, fmt.Errorf("resolve: no snapped pour points in batch")
	}

	// coincident points share a cell and therefore a label
	bycell := make(map[int][]string)
	for _, s := range snapped {
		bycell[s.I] = append(bycell[s.I], s.Name)
	}
	cells := make([]int, 0, len(bycell))
	for c := range bycell {
		cells = append(cells, c)
	}
	sort.Ints(cells)
	cands := make([]*candidate, len(cells))
	for i, c := range cells {
		names := bycell[c]
		sort.Strings(names)
		cands[i] = &candidate{cell: c, names: names}
	}

	r.fillMemberships(cands)

	return r.compose(cands)
}

// compose applies the nesting policy and writes the final label raster.
func (r *Resolver) compose(cands []*candidate) (*Labels, error) {
	n := len(cands)

	// outermost containing candidate per candidate; containers of a given
	// outlet always form a nested chain, so max area identifies it
	root := make([]int, n)
	for j := range cands {
		root[j] = j
		if r.Policy != MergeOutermost {
			continue
		}
		for i := range cands {
			if i == j || !cands[i].member[cands[j].cell] {
				continue
			}
			if root[j] == j || cands[i].area > cands[root[j]].area {
				root[j] = i
			}
		}
	}

	// assign label ids on ascending outlet cell id of the label owners
	owners := make([]int, 0, n)
	seen := make(map[int]bool, n)
	for j := range cands {
		if !seen[root[j]] {
			seen[root[j]] = true
			owners = append(owners, root[j])
		}
	}
	sort.Slice(owners, func(a, b int) bool {
		return r.FM.Cids[cands[owners[a]].cell] < r.FM.Cids[cands[owners[b]].cell]
	})
	lblof := make(map[int]int, len(owners))
	for k, o := range owners {
		lblof[o] = k + 1
	}

	lbl := &Labels{
		L:      make([]int, r.FM.Nc),
		Names:  make(map[int][]string, len(owners)),
		Outlet: make(map[int]int, len(owners)),
		Area:   make(map[int]int, len(owners)),
		Nl:     len(owners),
	}
	for i := range lbl.L {
		lbl.L[i] = -1
	}
	for _, o := range owners {
		id := lblof[o]
		lbl.Outlet[id] = cands[o].cell
	}
	for j, c := range cands {
		id := lblof[root[j]]
		lbl.Names[id] = append(lbl.Names[id], c.names...)
	}
	for id := range lbl.Names {
		sort.Strings(lbl.Names[id])
	}

	// write labels largest membership first so that, when nested points are
	// kept distinct, the inner watershed overwrites its ancestor's cells
	order := make([]int, n)
	for j := range order {
		order[j] = j
	}
	sort.Slice(order, func(a, b int) bool {
		ca, cb := cands[order[a]], cands[order[b]]
		if ca.area != cb.area {
			return ca.area > cb.area
		}
		return r.FM.Cids[ca.cell] < r.FM.Cids[cb.cell]
	})
	for _, j := range order {
		id := lblof[root[j]]
		for i, in := range cands[j].member {
			if in {
				lbl.L[i] = id
			}
		}
		cands[j].member = nil // discarded after merge
	}

	for _, v := range lbl.L {
		if v > 0 {
			lbl.Area[v]++
		}
	}
	return lbl, nil
}
