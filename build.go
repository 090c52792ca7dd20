package catchment

import (
	"fmt"
	"strconv"

	"github.com/maseology/catchment/flowmodel"
	"github.com/maseology/catchment/postpro"
	"github.com/maseology/catchment/pour"
	"github.com/maseology/catchment/resolve"
	"github.com/maseology/mmio"
)

const defaultStreamThresh = 11111. // cells, ~1 km² at 10 m resolution

// BuildDelineation drives the pipeline from a .cdel control file:
//
//	prfx     output file prefix
//	gdeffp   grid definition
//	hdemfp   topologic DEM (.uhdem), or
//	demfp    raw elevation raster (filled and D8-resolved here)
//	ppfp     pour point csv (name,x,y); omit to delineate per stream link
//	latlon   pour point coordinates given as latitude,longitude
//	radius   snap search radius
//	policy   merge-outermost (default) | keep-nested
//	statfp   zonal statistics raster; defaults to flow accumulation
//	stats    statistic functions (default: count max)
//	strmcells stream-cell threshold for the stream-link mode
func BuildDelineation(controlFP string) error {
	tt := mmio.NewTimer()
	defer tt.Print("delineation complete")

	println("load .cdel file")
	ins := mmio.NewInstruct(controlFP)
	param1 := func(k string) string {
		if v, ok := ins.Param[k]; ok && len(v) > 0 {
			return v[0]
		}
		return ""
	}
	prfx := param1("prfx")
	if prfx == "" {
		return fmt.Errorf("BuildDelineation: control file requires prfx")
	}

	///////////////////////////////////////////////////////
	println("building flow model..")
	dom, err := func() (Domain, error) {
		var d Domain
		gdefFP := param1("gdeffp")
		if hdemFP := param1("hdemfp"); hdemFP != "" {
			fm, err := flowmodel.LoadUHDEM(gdefFP, hdemFP)
			if err != nil {
				return d, err
			}
			d.FM = fm
			return d, nil
		}
		demFP := param1("demfp")
		if demFP == "" {
			return d, fmt.Errorf("BuildDelineation: control file requires hdemfp or demfp")
		}
		ter, err := flowmodel.LoadDEM(gdefFP, demFP)
		if err != nil {
			return d, err
		}
		fm, err := flowmodel.New(ter)
		if err != nil {
			return d, err
		}
		d.FM, d.Ter = fm, ter
		return d, nil
	}()
	if err != nil {
		return err
	}

	///////////////////////////////////////////////////////
	println("collecting pour points..")
	pts, err := func() ([]pour.Point, error) {
		if ppFP := param1("ppfp"); ppFP != "" {
			_, latlon := ins.Param["latlon"]
			return pour.ReadCSV(ppFP, latlon)
		}
		// stream-link mode: one pour point per stream segment outlet
		thresh := defaultStreamThresh
		if s := param1("strmcells"); s != "" {
			if thresh, err = strconv.ParseFloat(s, 64); err != nil {
				return nil, fmt.Errorf("BuildDelineation: strmcells: %v", err)
			}
		}
		lnk, nl := dom.FM.StreamLinks(thresh)
		if nl == 0 {
			return nil, fmt.Errorf("BuildDelineation: no stream cells at threshold %.0f", thresh)
		}
		fmt.Printf(" %d stream links identified\n", nl)
		pts := make([]pour.Point, nl)
		for l, i := range dom.FM.LinkOutlets(lnk, nl) {
			xy := dom.FM.Coord[dom.FM.Cids[i]]
			pts[l] = pour.Point{Name: fmt.Sprintf("link%03d", l), X: xy.X, Y: xy.Y}
		}
		return pts, nil
	}()
	if err != nil {
		return err
	}

	radius := dom.FM.Cw // default: one cell width
	if s := param1("radius"); s != "" {
		if radius, err = strconv.ParseFloat(s, 64); err != nil {
			return fmt.Errorf("BuildDelineation: radius: %v", err)
		}
	}

	if statFP := param1("statfp"); statFP != "" {
		ter, err := flowmodel.LoadDEM(param1("gdeffp"), statFP)
		if err != nil {
			return err
		}
		dom.Stats = ter
	} else {
		dom.Stats = AccumRaster(dom.FM) // the original pipeline default
	}
	stats := []string{"count", "max"}
	if v, ok := ins.Param["stats"]; ok && len(v) > 0 {
		stats = v
	}

	///////////////////////////////////////////////////////
	p := Pipeline{
		Dom:      dom,
		Radius:   radius,
		Policy:   resolve.ParsePolicy(param1("policy")),
		StatFns:  stats,
		Progress: true,
	}
	res, err := p.Delineate(pts)
	if err != nil {
		return err
	}
	tt.Lap("pipeline complete")

	///////////////////////////////////////////////////////
	println("saving outputs..")
	mmio.MakeDir(mmio.GetFileDir(prfx))
	if dom.FM.GD != nil {
		if err := SaveLabels(prfx+"watershed.bil", dom.FM, res.Labels); err != nil {
			return err
		}
	}
	if err := res.Labels.SaveGob(prfx + "labels.gob"); err != nil {
		return err
	}
	if err := postpro.WriteGeoJSON(prfx+"watershed.geojson", res.Sheds); err != nil {
		return err
	}
	if err := writeSnapReport(prfx+"snap.csv", res); err != nil {
		return err
	}
	fmt.Printf(" %d watershed(s) written; %d pour point(s) unresolvable\n", len(res.Sheds), len(res.SnapErrs))
	return nil
}
