package postpro

import (
	"fmt"
	"math"

	"github.com/maseology/catchment/flowmodel"
)

// StatFns are the aggregate functions AttachZonalStats recognizes.
var StatFns = []string{"count", "min", "max", "mean", "sum"}

// AttachZonalStats computes the requested aggregates of a secondary raster
// over each watershed's labeled cells. The raster must share the flow
// model's cell width and overlap its labeled area; a mismatch is a
// StatsError, never a silent misalignment.
func AttachZonalStats(ws []Watershed, fm *flowmodel.FlowModel, lbl []int, r *flowmodel.Terrain, fns []string) error {
	if r == nil || len(r.Z) == 0 {
		return &StatsError{"zonal stats raster is empty"}
	}
	if math.Abs(r.Cw-fm.Cw) > 1e-9 {
		return &StatsError{fmt.Sprintf("cell width mismatch: raster %f, flow model %f", r.Cw, fm.Cw)}
	}
	for _, fn := range fns {
		ok := false
		for _, v := range StatFns {
			if fn == v {
				ok = true
				break
			}
		}
		if !ok {
			return &StatsError{fmt.Sprintf("unknown statistic %q", fn)}
		}
	}

	type agg struct {
		n          float64
		mn, mx, sm float64
	}
	aggs := make(map[int]*agg, len(ws))
	for _, w := range ws {
		aggs[w.Label] = &agg{mn: math.MaxFloat64, mx: -math.MaxFloat64}
	}

	noverlap := 0
	for i, cid := range fm.Cids {
		t := lbl[i]
		if t < 0 {
			continue
		}
		a, ok := aggs[t]
		if !ok {
			continue
		}
		v, ok := r.Z[cid]
		if !ok || v == r.Nodata {
			continue
		}
		noverlap++
		a.n++
		a.sm += v
		if v < a.mn {
			a.mn = v
		}
		if v > a.mx {
			a.mx = v
		}
	}
	if noverlap == 0 {
		return &StatsError{"stats raster does not overlap the labeled area"}
	}

	for iw := range ws {
		a := aggs[ws[iw].Label]
		for _, fn := range fns {
			switch fn {
			case "count":
				ws[iw].Stats["count"] = a.n
			case "sum":
				ws[iw].Stats["sum"] = a.sm
			case "min":
				if a.n > 0 {
					ws[iw].Stats["min"] = a.mn
				}
			case "max":
				if a.n > 0 {
					ws[iw].Stats["max"] = a.mx
				}
			case "mean":
				if a.n > 0 {
					ws[iw].Stats["mean"] = a.sm / a.n
				}
			}
		}
	}
	return nil
}
