package nodeid

import (
	"cmp"
	"fmt"
)

// OperatorID is the structured form of an `MM-OO` operator identifier.
type OperatorID struct {
	Fragment int
	Operator int
}

// String renders the id in its canonical zero-padded form.
func (id OperatorID) String() string {
	return fmt.Sprintf("%02d-%02d", id.Fragment, id.Operator)
}

// Compare orders ids by fragment, then by operator.
func (id OperatorID) Compare(other OperatorID) int {
	if c := cmp.Compare(id.Fragment, other.Fragment); c != 0 {
		return c
	}
	return cmp.Compare(id.Operator, other.Operator)
}
