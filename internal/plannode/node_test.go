package plannode

import (
	"errors"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Scan(t *testing.T) {
	n, err := New(TypeScan, map[string]string{
		"splits":   "1",
		"columns":  "A, B, C",
		"table":    "t1",
		"snapshot": "42",
	}, nil)
	require.NoError(t, err)

	scan, ok := n.(*Scan)
	require.True(t, ok, "expected *Scan, got %T", n)
	assert.Equal(t, 1, scan.SplitCount)
	assert.Equal(t, []string{"A", "B", "C"}, scan.Columns)
	assert.Equal(t, "t1", scan.Table)
	assert.Equal(t, int64(42), scan.Snapshot)
	assert.Equal(t, TypeScan, scan.TypeName())
	assert.Empty(t, scan.Children())
}

func TestNew_ScanAbsentProperties(t *testing.T) {
	n, err := New(TypeScan, map[string]string{}, nil)
	require.NoError(t, err)

	scan := n.(*Scan)
	assert.Equal(t, -1, scan.SplitCount)
	assert.Equal(t, int64(-1), scan.Snapshot)
	assert.Nil(t, scan.Columns)
	assert.Equal(t, "", scan.Table)
}

func TestNew_ScanNonNumeric(t *testing.T) {
	testCases := []struct {
		name     string
		props    map[string]string
		property string
	}{
		{name: "splits", props: map[string]string{"splits": "many"}, property: "splits"},
		{name: "snapshot", props: map[string]string{"splits": "2", "snapshot": "latest"}, property: "snapshot"},
		{name: "empty splits", props: map[string]string{"splits": ""}, property: "splits"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			n, err := New(TypeScan, tc.props, nil)
			require.Error(t, err)
			assert.Nil(t, n)

			var propErr *MissingRequiredPropertyError
			require.True(t, errors.As(err, &propErr))
			assert.Equal(t, tc.property, propErr.Property)
			assert.Equal(t, TypeScan, propErr.Type)

			var numErr *strconv.NumError
			assert.True(t, errors.As(err, &numErr))
		})
	}
}

func TestNew_FilterJoinSort(t *testing.T) {
	t.Run("filter", func(t *testing.T) {
		n, err := New(TypeFilter, map[string]string{"condition": "=($0, 1)"}, nil)
		require.NoError(t, err)
		assert.Equal(t, "=($0, 1)", n.(*Filter).Condition)
	})

	t.Run("filter without condition", func(t *testing.T) {
		n, err := New(TypeFilter, nil, nil)
		require.NoError(t, err)
		assert.Equal(t, "", n.(*Filter).Condition)
	})

	t.Run("join", func(t *testing.T) {
		n, err := New(TypeJoin, map[string]string{"joinType": "inner", "condition": "=($0, $2)"}, nil)
		require.NoError(t, err)
		join := n.(*Join)
		assert.Equal(t, "inner", join.JoinType)
		assert.Equal(t, "=($0, $2)", join.Condition)
	})

	t.Run("sort", func(t *testing.T) {
		n, err := New(TypeSort, map[string]string{
			"sort1": "$2", "dir1": "DESC",
			"sort0": "$0", "dir0": "ASC",
			"fetch": "10",
		}, nil)
		require.NoError(t, err)
		assert.Equal(t, []SortKey{{Field: "$0", Direction: "ASC"}, {Field: "$2", Direction: "DESC"}}, n.(*Sort).Keys)
	})

	t.Run("generic fallback", func(t *testing.T) {
		n, err := New("LogicalProject", map[string]string{"a": "$0"}, nil)
		require.NoError(t, err)
		_, ok := n.(*Generic)
		assert.True(t, ok)
		v, ok := n.Property("a")
		assert.True(t, ok)
		assert.Equal(t, "$0", v)
	})
}

func TestNode_Immutable(t *testing.T) {
	props := map[string]string{"a": "1"}
	leaf, err := New("Leaf", nil, nil)
	require.NoError(t, err)
	children := []Node{leaf}

	n, err := New("Parent", props, children)
	require.NoError(t, err)

	props["a"] = "changed"
	children[0] = nil
	assert.Equal(t, map[string]string{"a": "1"}, n.Properties())
	require.Len(t, n.Children(), 1)
	assert.Same(t, leaf, n.Children()[0])

	got := n.Properties()
	got["a"] = "mutated"
	v, _ := n.Property("a")
	assert.Equal(t, "1", v)

	kids := n.Children()
	kids[0] = nil
	assert.NotNil(t, n.Children()[0])
}

func TestWalkAndCount(t *testing.T) {
	c1, _ := New("C1", nil, nil)
	c2, _ := New("C2", nil, nil)
	mid, _ := New("Mid", nil, []Node{c1})
	root, _ := New("Root", nil, []Node{mid, c2})

	var visited []string
	var depths []int
	Walk(root, func(n Node, depth int) bool {
		visited = append(visited, n.TypeName())
		depths = append(depths, depth)
		return true
	})
	assert.Equal(t, []string{"Root", "Mid", "C1", "C2"}, visited)
	assert.Equal(t, []int{0, 1, 2, 1}, depths)
	assert.Equal(t, 4, Count(root))
	assert.Equal(t, 0, Count(nil))

	visited = nil
	Walk(root, func(n Node, depth int) bool {
		visited = append(visited, n.TypeName())
		return n.TypeName() != "Mid"
	})
	assert.Equal(t, []string{"Root", "Mid", "C2"}, visited)
}
