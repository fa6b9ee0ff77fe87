package planjson

import (
	"bufio"
	"io"
	"strconv"
	"strings"
)

// Dump writes one line per relation in the given order:
//
//	00-01 Project rows=12 cost={tiny} <- [00-02] -> [00-00]
func Dump(w io.Writer, relations []*Relation) error {
	bw := bufio.NewWriter(w)
	for _, r := range relations {
		bw.WriteString(FormatRelation(r))
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

// FormatRelation renders a single relation and the names of its neighbours.
func FormatRelation(r *Relation) string {
	var sb strings.Builder
	sb.WriteString(r.Name)
	if r.Op != "" {
		sb.WriteByte(' ')
		sb.WriteString(r.Op)
	}
	sb.WriteString(" rows=")
	sb.WriteString(strconv.FormatFloat(r.RowCount, 'f', -1, 64))
	sb.WriteString(" cost=")
	sb.WriteString(r.Cost.String())
	if len(r.Upstream) > 0 {
		sb.WriteString(" <- ")
		writeNames(&sb, r.Upstream)
	}
	if len(r.Downstream) > 0 {
		sb.WriteString(" -> ")
		writeNames(&sb, r.Downstream)
	}
	return sb.String()
}

func writeNames(sb *strings.Builder, rs []*Relation) {
	sb.WriteByte('[')
	for i, r := range rs {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(r.Name)
	}
	sb.WriteByte(']')
}
