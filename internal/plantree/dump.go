package plantree

import (
	"bufio"
	"io"
	"slices"
	"strings"

	"github.com/specialistvlad/plangraph/internal/plannode"
)

// Dump writes the tree rooted at root back in the indented notation, one
// node per line with properties sorted by name. Parsing the output again
// yields a tree of the same shape and properties.
func Dump(w io.Writer, root plannode.Node) error {
	bw := bufio.NewWriter(w)
	plannode.Walk(root, func(n plannode.Node, depth int) bool {
		bw.WriteString(strings.Repeat(" ", depth*IndentStep))
		bw.WriteString(FormatNode(n))
		bw.WriteByte('\n')
		return true
	})
	return bw.Flush()
}

// FormatNode renders a single node as `TypeName(name=[value], ...)`.
func FormatNode(n plannode.Node) string {
	props := n.Properties()
	names := make([]string, 0, len(props))
	for name := range props {
		names = append(names, name)
	}
	slices.Sort(names)

	var sb strings.Builder
	sb.WriteString(n.TypeName())
	sb.WriteByte('(')
	for i, name := range names {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(name)
		sb.WriteString("=[")
		sb.WriteString(props[name])
		sb.WriteByte(']')
	}
	sb.WriteByte(')')
	return sb.String()
}
