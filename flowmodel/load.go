package flowmodel

import (
	"fmt"

	"github.com/maseology/goHydro/grid"
	"github.com/maseology/goHydro/tem"
	"github.com/maseology/mmaths"
)

// Terrain is an immutable elevation raster with its grid definition.
type Terrain struct {
	GD     *grid.Definition
	Coord  map[int]mmaths.Point
	Z      map[int]float64 // cell id to elevation
	Cw     float64
	Nodata float64
}

// LoadDEM reads a grid definition and a real-valued elevation raster.
func LoadDEM(gdefFP, demFP string) (*Terrain, error) {
	fmt.Printf(" loading: %s\n", gdefFP)
	gd, err := grid.ReadGDEF(gdefFP, true)
	if err != nil {
		return nil, fmt.Errorf("LoadDEM: %v", err)
	}
	if len(gd.Sactives) <= 0 {
		return nil, fmt.Errorf("LoadDEM: grid definition requires active cells")
	}

	fmt.Printf(" loading: %s\n", demFP)
	var g grid.Real
	g.NewGD32(demFP, gd)
	z := make(map[int]float64, len(gd.Sactives))
	for _, c := range gd.Sactives {
		if v, ok := g.A[c]; ok && v != -9999. {
			z[c] = v
		}
	}
	return &Terrain{
		GD:     gd,
		Coord:  gd.Coord,
		Z:      z,
		Cw:     gd.Cwidth,
		Nodata: -9999.,
	}, nil
}

// LoadUHDEM reads a grid definition and a pre-built topologic DEM
// (.uhdem/.hdem), delegating flow directions to the hydrology library.
func LoadUHDEM(gdefFP, hdemFP string) (*FlowModel, error) {
	fmt.Printf(" loading: %s\n", gdefFP)
	gd, err := grid.ReadGDEF(gdefFP, true)
	if err != nil {
		return nil, fmt.Errorf("LoadUHDEM: %v", err)
	}
	if len(gd.Sactives) <= 0 {
		return nil, fmt.Errorf("LoadUHDEM: grid definition requires active cells")
	}

	fmt.Printf(" loading: %s\n", hdemFP)
	dem, err := tem.NewTEM(hdemFP)
	if err != nil {
		return nil, fmt.Errorf("LoadUHDEM: tem.NewTEM: %v", err)
	}
	return FromTEM(gd, dem)
}

// FromTEM builds the flow model from a topologic elevation model, keeping
// only cells active in the grid definition.
func FromTEM(gd *grid.Definition, dem *tem.TEM) (*FlowModel, error) {
	nwarn := 0
	for _, i := range gd.Sactives {
		if _, ok := dem.TEC[i]; !ok {
			return nil, &ComputationError{"FromTEM", fmt.Sprintf("cell id %d not found in TEM", i)}
		}
		if dem.TEC[i].Z == -9999. {
			fmt.Printf("    WARNING no elevation assigned to cell %d\n", i)
			nwarn++
		}
	}
	if nwarn > 0 {
		println()
	}

	cids, ds := dem.DownslopeContributingAreaIDs(-1)
	if len(cids) == 0 {
		return nil, &ComputationError{"FromTEM", "no resolvable cells in TEM"}
	}

	fm, err := FromArrays(cids, ds, gd.Coord, gd.Cwidth)
	if err != nil {
		return nil, err
	}
	fm.GD = gd
	return fm, nil
}
