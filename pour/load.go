package pour

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/maseology/mmio"
)

// ReadCSV loads pour points from a headered csv of name,x,y. With
// latlon=true columns 2-3 are taken as latitude,longitude and projected.
func ReadCSV(fp string, latlon bool) ([]Point, error) {
	f, err := os.Open(fp)
	if err != nil {
		return nil, fmt.Errorf("pour.ReadCSV: %v", err)
	}
	defer f.Close()

	var pts []Point
	seen := make(map[string]bool)
	for rec := range mmio.LoadCSV(io.Reader(f), 1) {
		if len(rec) < 3 {
			return nil, fmt.Errorf("pour.ReadCSV: short record in %s", fp)
		}
		a, err := strconv.ParseFloat(rec[1], 64)
		if err != nil {
			return nil, fmt.Errorf("pour.ReadCSV (%s): %v", rec[0], err)
		}
		b, err := strconv.ParseFloat(rec[2], 64)
		if err != nil {
			return nil, fmt.Errorf("pour.ReadCSV (%s): %v", rec[0], err)
		}
		if seen[rec[0]] {
			return nil, fmt.Errorf("pour.ReadCSV: duplicate pour point identifier %q", rec[0])
		}
		seen[rec[0]] = true

		if latlon {
			p, err := FromLatLon(rec[0], a, b)
			if err != nil {
				return nil, err
			}
			pts = append(pts, p)
		} else {
			pts = append(pts, Point{Name: rec[0], X: a, Y: b})
		}
	}
	if len(pts) == 0 {
		return nil, fmt.Errorf("pour.ReadCSV: no pour points found in %s", fp)
	}
	return pts, nil
}
