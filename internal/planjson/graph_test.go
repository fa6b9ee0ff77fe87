package planjson

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGraph_SourcesAndSinks(t *testing.T) {
	nodes := map[string]Descriptor{
		"00-00": {Inputs: []string{"00-01", "00-02"}, CumulativeCost: tiny},
		"00-01": {CumulativeCost: tiny},
		"00-02": {CumulativeCost: tiny},
		"00-03": {CumulativeCost: tiny},
	}
	g, err := Build(context.Background(), nodes)
	require.NoError(t, err)

	names := func(rs []*Relation) []string {
		var out []string
		for _, r := range rs {
			out = append(out, r.Name)
		}
		return out
	}
	assert.Equal(t, []string{"00-01", "00-02", "00-03"}, names(g.Sources()))
	assert.Equal(t, []string{"00-00", "00-03"}, names(g.Sinks()))
}

func TestGraph_TopologicalOrderKeepsOperatorOrderOnTies(t *testing.T) {
	nodes := map[string]Descriptor{
		"00-00": {Inputs: []string{"00-02"}, CumulativeCost: tiny},
		"00-01": {CumulativeCost: tiny},
		"00-02": {Inputs: []string{"00-01"}, CumulativeCost: tiny},
		"00-03": {CumulativeCost: tiny},
	}
	g, err := Build(context.Background(), nodes)
	require.NoError(t, err)

	order, err := g.TopologicalOrder()
	require.NoError(t, err)

	var ids []string
	for _, r := range order {
		ids = append(ids, r.ID)
	}
	assert.Equal(t, []string{"00-01", "00-03", "00-02", "00-00"}, ids)
}

func TestDump(t *testing.T) {
	g, err := Build(context.Background(), map[string]Descriptor{
		`"00-00"`: {Op: "Screen", Inputs: []string{`"00-01"`}, RowCount: 1, CumulativeCost: "{1 rows, 2 cpu, 0 io, 0 network, 0 memory}"},
		`"00-01"`: {Op: "Scan", RowCount: 12.5, CumulativeCost: tiny},
	})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Dump(&buf, g.Relations()))
	assert.Equal(t,
		"00-00 Screen rows=1 cost={1 rows, 2 cpu, 0 io, 0 network, 0 memory} <- [00-01]\n"+
			"00-01 Scan rows=12.5 cost={tiny} -> [00-00]\n",
		buf.String())
}
