// Package postpro converts resolved watershed labels to attributed vector
// polygons.
package postpro

import (
	"math"
	"sort"

	"github.com/go-spatial/geom"
	"github.com/maseology/catchment/flowmodel"
)

type corner [2]int

type edge struct {
	a, b corner
}

// Polygonize traces each label's cell-boundary outline into closed rings,
// returning one multi-polygon per label. Unlabeled (nodata) cells are
// excluded. Rings are emitted counter-clockwise for shells and clockwise
// for holes, in world coordinates.
func Polygonize(fm *flowmodel.FlowModel, lbl []int) map[int]geom.MultiPolygon {
	// label lookup on the cell-width lattice; bx,by recover the true world
	// position of the lattice (grid origins need not align to cell widths)
	type ck = corner
	lk := make(map[ck]int, fm.Nc)
	key := make([]ck, fm.Nc)
	var bx, by float64
	for i, cid := range fm.Cids {
		xy := fm.Coord[cid]
		k := ck{int(math.Round(xy.X / fm.Cw)), int(math.Round(xy.Y / fm.Cw))}
		key[i] = k
		if i == 0 {
			bx, by = xy.X-float64(k[0])*fm.Cw, xy.Y-float64(k[1])*fm.Cw
		}
		if lbl[i] >= 0 {
			lk[k] = lbl[i]
		}
	}
	diff := func(k ck, dx, dy int, t int) bool {
		v, ok := lk[ck{k[0] + dx, k[1] + dy}]
		return !ok || v != t
	}

	// boundary edges per label, directed with the interior on the left
	edges := make(map[int][]edge)
	for i := range fm.Cids {
		t := lbl[i]
		if t < 0 {
			continue
		}
		k := key[i]
		c00 := corner{k[0], k[1]}
		c10 := corner{k[0] + 1, k[1]}
		c11 := corner{k[0] + 1, k[1] + 1}
		c01 := corner{k[0], k[1] + 1}
		if diff(k, 0, -1, t) {
			edges[t] = append(edges[t], edge{c00, c10})
		}
		if diff(k, 1, 0, t) {
			edges[t] = append(edges[t], edge{c10, c11})
		}
		if diff(k, 0, 1, t) {
			edges[t] = append(edges[t], edge{c11, c01})
		}
		if diff(k, -1, 0, t) {
			edges[t] = append(edges[t], edge{c01, c00})
		}
	}

	out := make(map[int]geom.MultiPolygon, len(edges))
	for t, es := range edges {
		out[t] = assemble(stitch(es), fm.Cw, bx, by)
	}
	return out
}

// stitch links directed boundary edges into closed rings, preferring the
// sharpest left turn at pinch corners so rings never cross.
func stitch(es []edge) [][]corner {
	sort.Slice(es, func(i, j int) bool {
		if es[i].a != es[j].a {
			return less(es[i].a, es[j].a)
		}
		return less(es[i].b, es[j].b)
	})
	starts := make(map[corner][]int, len(es))
	for i, e := range es {
		starts[e.a] = append(starts[e.a], i)
	}
	used := make([]bool, len(es))

	var rings [][]corner
	for i := range es {
		if used[i] {
			continue
		}
		ring := []corner{es[i].a}
		cur := i
		for {
			used[cur] = true
			ring = append(ring, es[cur].b)
			if es[cur].b == ring[0] {
				break
			}
			cur = nextEdge(es, starts, used, cur)
		}
		rings = append(rings, ring)
	}
	return rings
}

func nextEdge(es []edge, starts map[corner][]int, used []bool, cur int) int {
	cands := starts[es[cur].b]
	din := dir(es[cur])
	best, bscore := -1, -3
	for _, j := range cands {
		if used[j] {
			continue
		}
		s := turn(din, dir(es[j])) // left turn preferred
		if s > bscore {
			best, bscore = j, s
		}
	}
	return best
}

func less(a, b corner) bool {
	if a[0] != b[0] {
		return a[0] < b[0]
	}
	return a[1] < b[1]
}

func dir(e edge) [2]int { return [2]int{e.b[0] - e.a[0], e.b[1] - e.a[1]} }

// turn scores the rotation from din to dout: 1 left, 0 straight, -1 right,
// -2 reverse.
func turn(din, dout [2]int) int {
	cross := din[0]*dout[1] - din[1]*dout[0]
	if cross != 0 {
		return cross // ±1 on the unit lattice
	}
	if din == dout {
		return 0
	}
	return -2
}

// assemble converts lattice rings to world-coordinate polygons, attaching
// each hole (clockwise ring) to the shell that contains it.
func assemble(rings [][]corner, cw, bx, by float64) geom.MultiPolygon {
	world := func(ring []corner) [][2]float64 {
		o := make([][2]float64, len(ring))
		for i, c := range ring {
			o[i] = [2]float64{(float64(c[0])-.5)*cw + bx, (float64(c[1])-.5)*cw + by}
		}
		return o
	}

	var shells []geom.Polygon
	var shellRings [][]corner
	var holes [][]corner
	for _, r := range rings {
		if latticeArea(r) > 0 {
			shells = append(shells, geom.Polygon{world(r)})
			shellRings = append(shellRings, r)
		} else {
			holes = append(holes, r)
		}
	}
	for _, h := range holes {
		qx, qy := interiorPoint(h)
		for i, s := range shellRings {
			if ringContains(s, qx, qy) {
				shells[i] = append(shells[i], world(h))
				break
			}
		}
	}

	mp := make(geom.MultiPolygon, len(shells))
	for i, s := range shells {
		mp[i] = s
	}
	return mp
}

// interiorPoint returns the centre of the labeled cell bordering a hole's
// first edge. Holes run clockwise with the labeled region on the left, so
// that cell always lies in the shell the hole punctures.
func interiorPoint(h []corner) (float64, float64) {
	a, b := h[0], h[1]
	mx, my := (float64(a[0])+float64(b[0]))/2, (float64(a[1])+float64(b[1]))/2
	dx, dy := float64(b[0]-a[0]), float64(b[1]-a[1])
	return mx - dy/2, my + dx/2
}

func latticeArea(ring []corner) int {
	s := 0
	for i := 0; i < len(ring)-1; i++ {
		s += ring[i][0]*ring[i+1][1] - ring[i+1][0]*ring[i][1]
	}
	return s
}

// ringContains ray-casts a point against a lattice ring. Query points are
// cell centres (half-integer lattice coordinates) so they never fall on a
// ring edge.
func ringContains(ring []corner, x, y float64) bool {
	in := false
	for i := 0; i < len(ring)-1; i++ {
		x0, y0 := float64(ring[i][0]), float64(ring[i][1])
		x1, y1 := float64(ring[i+1][0]), float64(ring[i+1][1])
		if (y0 > y) != (y1 > y) && x < x0+(y-y0)/(y1-y0)*(x1-x0) {
			in = !in
		}
	}
	return in
}
