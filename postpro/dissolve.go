package postpro

import (
	"fmt"
	"math"
	"sort"

	"github.com/go-spatial/geom"
)

// Watershed is a dissolved (multi-)polygon for one distinct label, with
// merged pour point identifiers and any attached zonal statistics.
type Watershed struct {
	Label int
	Names []string
	Geom  geom.MultiPolygon
	Area  float64
	Stats map[string]float64
}

// DissolveByLabel merges all polygon parts sharing a label into one
// watershed each. Invalid geometry gets one automatic repair pass; if the
// repair fails a GeometryError surfaces rather than a plausible-looking
// wrong boundary.
func DissolveByLabel(parts map[int]geom.MultiPolygon, names map[int][]string) ([]Watershed, error) {
	lbls := make([]int, 0, len(parts))
	for t := range parts {
		lbls = append(lbls, t)
	}
	sort.Ints(lbls)

	ws := make([]Watershed, 0, len(lbls))
	for _, t := range lbls {
		mp := parts[t]
		if msg := validate(mp); msg != "" {
			mp = repair(mp)
			if msg = validate(mp); msg != "" {
				return nil, &GeometryError{Label: t, Msg: msg}
			}
			fmt.Printf("    WARNING geometry for label %d repaired\n", t)
		}
		ws = append(ws, Watershed{
			Label: t,
			Names: names[t],
			Geom:  mp,
			Area:  area(mp),
			Stats: map[string]float64{},
		})
	}
	return ws, nil
}

// validate returns an empty string for a well-formed multipolygon: every
// polygon carries a closed shell of non-zero area with no repeated
// consecutive vertices, holes closed likewise.
func validate(mp geom.MultiPolygon) string {
	if len(mp) == 0 {
		return "no polygons"
	}
	for _, p := range mp {
		if len(p) == 0 {
			return "polygon without a shell"
		}
		for ir, r := range p {
			if len(r) < 4 {
				return "ring with fewer than 4 vertices"
			}
			if r[0] != r[len(r)-1] {
				return "unclosed ring"
			}
			for i := 1; i < len(r); i++ {
				if r[i] == r[i-1] {
					return "repeated consecutive vertex"
				}
			}
			a := ringArea(r)
			if a == 0. {
				return "zero-area ring"
			}
			if ir == 0 && a < 0. {
				return "clockwise shell"
			}
			if ir > 0 && a > 0. {
				return "counter-clockwise hole"
			}
		}
	}
	return ""
}

// repair makes one pass: drops repeated vertices, closes open rings,
// reorients backwards rings and discards degenerates.
func repair(mp geom.MultiPolygon) geom.MultiPolygon {
	var out geom.MultiPolygon
	for _, p := range mp {
		var np geom.Polygon
		for ir, r := range p {
			nr := make([][2]float64, 0, len(r))
			for i, v := range r {
				if i > 0 && v == nr[len(nr)-1] {
					continue
				}
				nr = append(nr, v)
			}
			if len(nr) > 1 && nr[0] == nr[len(nr)-1] {
				nr = nr[:len(nr)-1]
			}
			if len(nr) < 3 {
				continue
			}
			nr = append(nr, nr[0])
			a := ringArea(nr)
			if a == 0. {
				continue
			}
			if (ir == 0) != (a > 0.) {
				reverse(nr)
			}
			np = append(np, nr)
		}
		if len(np) > 0 {
			out = append(out, np)
		}
	}
	return out
}

func reverse(r [][2]float64) {
	for i, j := 0, len(r)-1; i < j; i, j = i+1, j-1 {
		r[i], r[j] = r[j], r[i]
	}
}

func ringArea(r [][2]float64) float64 {
	s := 0.
	for i := 0; i < len(r)-1; i++ {
		s += r[i][0]*r[i+1][1] - r[i+1][0]*r[i][1]
	}
	return s / 2.
}

// area sums shell areas net of holes.
func area(mp geom.MultiPolygon) float64 {
	s := 0.
	for _, p := range mp {
		for _, r := range p {
			s += ringArea(r) // holes are negative
		}
	}
	return math.Abs(s)
}
