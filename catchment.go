// Package catchment delineates watersheds for batches of outlet (pour)
// points over a gridded flow model, dissolves the result to vector
// polygons and attaches zonal statistics.
package catchment

import (
	"fmt"

	"github.com/maseology/catchment/flowmodel"
	"github.com/maseology/catchment/postpro"
	"github.com/maseology/catchment/pour"
	"github.com/maseology/catchment/resolve"
)

// Domain is the explicit, caller-passed context carrying raster handles
// and configuration; no ambient/global raster session exists anywhere.
type Domain struct {
	FM    *flowmodel.FlowModel
	Ter   *flowmodel.Terrain // source terrain, when derived from a raw DEM
	Stats *flowmodel.Terrain // secondary raster for zonal statistics
}

// Pipeline runs snap, resolve, polygonize, dissolve and zonal statistics
// over one pour point batch.
type Pipeline struct {
	Dom      Domain
	Radius   float64 // pour point snap search radius
	Policy   resolve.Policy
	StatFns  []string
	Nworkers int
	Progress bool
}

// Result collects the batch outputs. SnapErrs holds per-point snap
// failures reported alongside the successes; they never abort the batch.
type Result struct {
	Snapped  []pour.Snapped
	SnapErrs []error
	Labels   *resolve.Labels
	Sheds    []postpro.Watershed
}

// Delineate runs the full pipeline for one batch of pour points.
func (p *Pipeline) Delineate(pts []pour.Point) (*Result, error) {
	println(" > snapping pour points..")
	snapped, snaperrs := pour.Snap(p.Dom.FM, pts, p.Radius)
	for _, e := range snaperrs {
		fmt.Printf("    WARNING %v\n", e)
	}
	if len(snapped) == 0 {
		return nil, fmt.Errorf("catchment: no pour point could be snapped within %.1f", p.Radius)
	}

	fmt.Printf(" > resolving %d watershed(s) [%s]..\n", len(snapped), p.Policy)
	rs := &resolve.Resolver{
		FM:           p.Dom.FM,
		Policy:       p.Policy,
		Nworkers:     p.Nworkers,
		ShowProgress: p.Progress,
	}
	lbl, err := rs.Resolve(snapped)
	if err != nil {
		return nil, err
	}

	println(" > vectorizing..")
	parts := postpro.Polygonize(p.Dom.FM, lbl.L)
	sheds, err := postpro.DissolveByLabel(parts, lbl.Names)
	if err != nil {
		return nil, err
	}

	if p.Dom.Stats != nil && len(p.StatFns) > 0 {
		println(" > attaching zonal statistics..")
		if err := postpro.AttachZonalStats(sheds, p.Dom.FM, lbl.L, p.Dom.Stats, p.StatFns); err != nil {
			return nil, err
		}
	}

	return &Result{
		Snapped:  snapped,
		SnapErrs: snaperrs,
		Labels:   lbl,
		Sheds:    sheds,
	}, nil
}

// AccumRaster exposes the flow model's contributing cell counts as a
// terrain raster, the default zonal statistics surface.
func AccumRaster(fm *flowmodel.FlowModel) *flowmodel.Terrain {
	z := make(map[int]float64, fm.Nc)
	for i, cid := range fm.Cids {
		z[cid] = fm.Accum[i]
	}
	return &flowmodel.Terrain{
		GD:     fm.GD,
		Coord:  fm.Coord,
		Z:      z,
		Cw:     fm.Cw,
		Nodata: -9999.,
	}
}
