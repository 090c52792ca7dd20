package resolve

// Policy sets how hydrologically nested pour points are labeled. A nested
// outlet's drainage area is a strict subset of its ancestor's, so the two
// conventions below produce different, non-interchangeable outputs; the
// choice is explicit and caller-configurable.
type Policy int

const (
	// MergeOutermost collapses nested pour points into the label of their
	// outermost (largest-area) ancestor, preserving single-common-outlet
	// semantics. Default.
	MergeOutermost Policy = iota
	// KeepNested retains nested points as distinct sub-watersheds; the
	// inner label claims its drainage cells from the ancestor.
	KeepNested
)

func (p Policy) String() string {
	switch p {
	case MergeOutermost:
		return "merge-outermost"
	case KeepNested:
		return "keep-nested"
	}
	return "unknown"
}

// ParsePolicy maps a control-file token to a Policy; unrecognized tokens
// fall back to the default MergeOutermost.
func ParsePolicy(s string) Policy {
	if s == "keep-nested" || s == "keepnested" {
		return KeepNested
	}
	return MergeOutermost
}
