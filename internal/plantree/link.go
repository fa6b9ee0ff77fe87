package plantree

import (
	"github.com/specialistvlad/plangraph/internal/planline"
)

// link assigns parents in a single pass over the records. It keeps the chain
// of open ancestors on a stack: a record closes every open node indented at
// or deeper than itself, and becomes a child of the innermost remaining node
// only when it sits exactly one level below it. Any other record is left out
// of the tree without closing anything else. Once the root is closed the
// rest of the input is ignored.
//
// children[i] lists the positions of the direct children of record i in
// input order; inTree[i] reports whether record i is part of the tree.
func link(records []planline.Record) (children [][]int, inTree []bool) {
	children = make([][]int, len(records))
	inTree = make([]bool, len(records))
	if len(records) == 0 {
		return children, inTree
	}

	inTree[0] = true
	stack := []int{0}
	for i := 1; i < len(records); i++ {
		indent := records[i].Indent
		for len(stack) > 0 && records[stack[len(stack)-1]].Indent >= indent {
			stack = stack[:len(stack)-1]
		}
		if len(stack) == 0 {
			break
		}

		parent := stack[len(stack)-1]
		if indent-records[parent].Indent != IndentStep {
			continue
		}
		children[parent] = append(children[parent], i)
		inTree[i] = true
		stack = append(stack, i)
	}
	return children, inTree
}
