package flowmodel

import "fmt"

// ComputationError reports a flow model that cannot be derived; it always
// aborts the run since every downstream result depends on it.
type ComputationError struct {
	Op  string
	Msg string
}

func (e *ComputationError) Error() string {
	return fmt.Sprintf("flowmodel.%s: %s", e.Op, e.Msg)
}
