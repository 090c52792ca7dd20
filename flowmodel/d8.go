package flowmodel

import (
	"fmt"
	"math"
)

// neighbors8 lists the D8 lattice offsets, ordered E,NE,N,NW,W,SW,S,SE.
var neighbors8 = [8][2]int{{1, 0}, {1, 1}, {0, 1}, {-1, 1}, {-1, 0}, {-1, -1}, {0, -1}, {1, -1}}

// New derives a complete flow model from a terrain raster: depressions are
// filled, then each cell is pointed at its steepest-descent D8 neighbor.
// Cells with no lower neighbor become sinks; a count of unresolved sinks
// interior to the raster is reported as a warning, never a silent failure.
func New(t *Terrain) (*FlowModel, error) {
	tf, _, err := t.FillDepressions()
	if err != nil {
		return nil, err
	}

	k2c, c2k := tf.buildKeys()
	diag := tf.Cw * math.Sqrt2

	ds := make(map[int]int, len(tf.Z))
	cids := make([]int, 0, len(tf.Z))
	nflat := 0
	for cid := range tf.Z {
		cids = append(cids, cid)
	}

	for cid, z := range tf.Z {
		k := c2k[cid]
		smax, dcid, edge := 0., -1, false
		for _, d := range neighbors8 {
			ncid, ok := k2c[cellkey{k[0] + d[0], k[1] + d[1]}]
			if !ok {
				edge = true
				continue
			}
			dist := tf.Cw
			if d[0] != 0 && d[1] != 0 {
				dist = diag
			}
			s := (z - tf.Z[ncid]) / dist
			if s > smax || (s == smax && s > 0. && ncid < dcid) {
				smax, dcid = s, ncid
			}
		}
		if dcid < 0 {
			if !edge {
				nflat++ // interior cell with no descent after filling
			}
			ds[cid] = -1
		} else {
			ds[cid] = dcid
		}
	}
	if nflat > 0 {
		fmt.Printf("    WARNING %d interior cells left unresolved (treated as sinks)\n", nflat)
	}

	fm, err := FromArrays(cids, ds, tf.Coord, tf.Cw)
	if err != nil {
		return nil, err
	}
	fm.GD = tf.GD
	return fm, nil
}
