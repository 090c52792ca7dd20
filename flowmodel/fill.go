package flowmodel

import (
	"container/heap"
	"fmt"
	"math"
)

// epsFill is the minimal rise applied across filled depressions and flats
// so that every filled cell retains a resolvable downslope gradient.
const epsFill = 1e-6

type cellkey [2]int

// keyOf maps a cell centroid onto an integer lattice of cell widths.
func (t *Terrain) keyOf(cid int) cellkey {
	xy := t.Coord[cid]
	return cellkey{int(math.Round(xy.X / t.Cw)), int(math.Round(xy.Y / t.Cw))}
}

func (t *Terrain) buildKeys() (map[cellkey]int, map[int]cellkey) {
	k2c := make(map[cellkey]int, len(t.Z))
	c2k := make(map[int]cellkey, len(t.Z))
	for cid := range t.Z {
		k := t.keyOf(cid)
		k2c[k] = cid
		c2k[cid] = k
	}
	return k2c, c2k
}

type fillcell struct {
	cid int
	z   float64
}

type fillheap []fillcell

func (h fillheap) Len() int { return len(h) }
func (h fillheap) Less(i, j int) bool {
	if h[i].z == h[j].z {
		return h[i].cid < h[j].cid // deterministic pop order
	}
	return h[i].z < h[j].z
}
func (h fillheap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *fillheap) Push(x interface{}) { *h = append(*h, x.(fillcell)) }
func (h *fillheap) Pop() interface{} {
	o := *h
	n := len(o)
	v := o[n-1]
	*h = o[:n-1]
	return v
}

// FillDepressions raises internal pits and flats by a priority flood so
// every cell can reach a raster edge monotonically. Returns a filled copy
// of the terrain and the number of raised cells.
func (t *Terrain) FillDepressions() (*Terrain, int, error) {
	if len(t.Z) == 0 {
		return nil, 0, &ComputationError{"FillDepressions", "terrain contains no data cells"}
	}

	k2c, c2k := t.buildKeys()
	zf := make(map[int]float64, len(t.Z))
	seen := make(map[int]bool, len(t.Z))

	// seed the flood with edge cells: any cell missing a cardinal or
	// diagonal neighbor drains off-raster
	h := &fillheap{}
	for cid, z := range t.Z {
		k := c2k[cid]
		edge := false
		for _, d := range neighbors8 {
			if _, ok := k2c[cellkey{k[0] + d[0], k[1] + d[1]}]; !ok {
				edge = true
				break
			}
		}
		if edge {
			*h = append(*h, fillcell{cid, z})
			seen[cid] = true
		}
	}
	if h.Len() == 0 {
		return nil, 0, &ComputationError{"FillDepressions", "terrain has no edge cells to drain through"}
	}
	heap.Init(h)

	nfill := 0
	for h.Len() > 0 {
		c := heap.Pop(h).(fillcell)
		zf[c.cid] = c.z
		k := c2k[c.cid]
		for _, d := range neighbors8 {
			ncid, ok := k2c[cellkey{k[0] + d[0], k[1] + d[1]}]
			if !ok || seen[ncid] {
				continue
			}
			seen[ncid] = true
			zn := t.Z[ncid]
			if zn <= c.z {
				zn = c.z + epsFill // raised across the depression/flat
				nfill++
			}
			heap.Push(h, fillcell{ncid, zn})
		}
	}

	if nfill > 0 {
		fmt.Printf("    WARNING %d depression/flat cells raised\n", nfill)
	}
	return &Terrain{
		GD:     t.GD,
		Coord:  t.Coord,
		Z:      zf,
		Cw:     t.Cw,
		Nodata: t.Nodata,
	}, nfill, nil
}
