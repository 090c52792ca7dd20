package flowmodel

// StreamGrid flags cells whose contributing area meets the accumulation
// threshold, given in number of cells.
func (fm *FlowModel) StreamGrid(threshcells float64) []bool {
	strm := make([]bool, fm.Nc)
	for i, a := range fm.Accum {
		strm[i] = a >= threshcells
	}
	return strm
}

// StreamLinks assigns a unique id to every stream run between junctions.
// Returns a per-cell link id (-1 for non-stream cells) and the link count.
// A stream cell begins a new link when it is a channel head or receives
// flow from more than one stream cell.
func (fm *FlowModel) StreamLinks(threshcells float64) ([]int, int) {
	strm := fm.StreamGrid(threshcells)
	lnk := make([]int, fm.Nc)
	for i := range lnk {
		lnk[i] = -1
	}
	nl := 0
	for i := range fm.Cids { // topological order, upstream first
		if !strm[i] {
			continue
		}
		nup, iup := 0, -1
		for _, u := range fm.USlp[i] {
			if strm[u] {
				nup++
				iup = u
			}
		}
		if nup == 1 {
			lnk[i] = lnk[iup]
		} else { // channel head or junction
			lnk[i] = nl
			nl++
		}
	}
	return lnk, nl
}

// LinkOutlets returns, per stream link, the most-downstream cell index of
// the link. These seed pour-point batches when watersheds are delineated
// per stream segment.
func (fm *FlowModel) LinkOutlets(lnk []int, nl int) []int {
	out := make([]int, nl)
	for i := range out {
		out[i] = -1
	}
	for i := range fm.Cids { // topological order: later cells overwrite
		if l := lnk[i]; l >= 0 {
			out[l] = i
		}
	}
	return out
}
