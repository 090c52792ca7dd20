// Package pour handles outlet (pour) point intake and snapping.
package pour

import (
	"fmt"

	"github.com/im7mortal/UTM"
)

// Point is an outlet coordinate in the raster's CRS with a caller-supplied
// identifier. Identifiers must be unique; locations may coincide or nest.
type Point struct {
	Name string
	X, Y float64
}

// FromLatLon projects a geographic coordinate to UTM so it can be snapped
// against a projected grid.
func FromLatLon(name string, lat, lon float64) (Point, error) {
	e, n, _, _, err := UTM.FromLatLon(lat, lon, lat >= 0.)
	if err != nil {
		return Point{}, fmt.Errorf("pour.FromLatLon (%s): %v", name, err)
	}
	return Point{Name: name, X: e, Y: n}, nil
}
