package pour

import (
	"fmt"

	"github.com/maseology/catchment/flowmodel"
)

// Snapped is a pour point resolved to a flow model cell.
type Snapped struct {
	Point
	I   int // array index into the flow model
	Cid int // grid cell id
}

// SnapError reports a pour point with no valid flow cell within the search
// radius. It is per-point and never aborts the batch.
type SnapError struct {
	P      Point
	Radius float64
}

func (e *SnapError) Error() string {
	return fmt.Sprintf("pour point %q (%.1f,%.1f): no flow cell within %.1f", e.P.Name, e.P.X, e.P.Y, e.Radius)
}

// Snap resolves each point to the highest-accumulation cell whose centroid
// lies within radius. Ties prefer the nearer cell, then the lower cell id,
// so results are identical run to run. Failed points are returned as
// SnapErrors alongside the successes.
func Snap(fm *flowmodel.FlowModel, pts []Point, radius float64) ([]Snapped, []error) {
	r2 := radius * radius
	var snapped []Snapped
	var errs []error
	for _, p := range pts {
		best, bacc, bd2 := -1, 0., 0.
		for i, cid := range fm.Cids {
			xy := fm.Coord[cid]
			dx, dy := xy.X-p.X, xy.Y-p.Y
			d2 := dx*dx + dy*dy
			if d2 > r2 {
				continue
			}
			a := fm.Accum[i]
			if best < 0 || a > bacc || (a == bacc && (d2 < bd2 || (d2 == bd2 && cid < fm.Cids[best]))) {
				best, bacc, bd2 = i, a, d2
			}
		}
		if best < 0 {
			errs = append(errs, &SnapError{P: p, Radius: radius})
			continue
		}
		snapped = append(snapped, Snapped{Point: p, I: best, Cid: fm.Cids[best]})
	}
	return snapped, errs
}
