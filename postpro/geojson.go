package postpro

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/go-spatial/geom/encoding/geojson"
)

// WriteGeoJSON persists the dissolved watersheds as a feature collection
// with label, merged pour point names, area and statistic attributes.
func WriteGeoJSON(fp string, ws []Watershed) error {
	fc := geojson.FeatureCollection{Features: make([]geojson.Feature, len(ws))}
	for i, w := range ws {
		id := uint64(w.Label)
		props := map[string]interface{}{
			"label": w.Label,
			"names": strings.Join(w.Names, ";"),
			"area":  w.Area,
		}
		for k, v := range w.Stats {
			props[k] = v
		}
		fc.Features[i] = geojson.Feature{
			ID:         &id,
			Geometry:   geojson.Geometry{Geometry: w.Geom},
			Properties: props,
		}
	}

	b, err := json.Marshal(fc)
	if err != nil {
		return fmt.Errorf("postpro.WriteGeoJSON: %v", err)
	}
	if err := os.WriteFile(fp, b, 0644); err != nil {
		return fmt.Errorf("postpro.WriteGeoJSON: %v", err)
	}
	return nil
}
