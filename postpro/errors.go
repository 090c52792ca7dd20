package postpro

import "fmt"

// GeometryError reports an invalid polygon that survived one repair pass.
type GeometryError struct {
	Label int
	Msg   string
}

func (e *GeometryError) Error() string {
	return fmt.Sprintf("postpro: invalid geometry for label %d: %s", e.Label, e.Msg)
}

// StatsError reports a polygon/raster mismatch that would silently
// misalign zonal statistics.
type StatsError struct {
	Msg string
}

func (e *StatsError) Error() string { return "postpro: " + e.Msg }
