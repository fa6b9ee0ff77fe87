package cost

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	testCases := []struct {
		name     string
		text     string
		expected Cumulative
	}{
		{
			name:     "tiny sentinel",
			text:     "{tiny}",
			expected: Cumulative{},
		},
		{
			name:     "tiny sentinel with surrounding whitespace",
			text:     "  {tiny} ",
			expected: Cumulative{},
		},
		{
			name: "five fields",
			text: "{20988.07 rows, 409286.37 cpu, 132200.0 io, 132200.2 network, 139603.2 memory}",
			expected: Cumulative{
				Rows:    20988.07,
				CPU:     409286.37,
				IO:      132200.0,
				Network: 132200.2,
				Memory:  139603.2,
			},
		},
		{
			name: "exponent notation",
			text: "{1.0E7 rows, 2.5e3 cpu, 0.0 io, 0.0 network, 1E-2 memory}",
			expected: Cumulative{
				Rows:   1.0e7,
				CPU:    2.5e3,
				Memory: 0.01,
			},
		},
		{
			name: "integers and loose spacing",
			text: "{ 1 rows ,2 cpu,  3 io, 4 network, 5 memory }",
			expected: Cumulative{
				Rows:    1,
				CPU:     2,
				IO:      3,
				Network: 4,
				Memory:  5,
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Parse(tc.text)
			require.NoError(t, err)
			assert.InDelta(t, tc.expected.Rows, got.Rows, 0.01)
			assert.InDelta(t, tc.expected.CPU, got.CPU, 0.01)
			assert.InDelta(t, tc.expected.IO, got.IO, 0.01)
			assert.InDelta(t, tc.expected.Network, got.Network, 0.01)
			assert.InDelta(t, tc.expected.Memory, got.Memory, 0.01)
		})
	}
}

func TestParse_Malformed(t *testing.T) {
	testCases := []struct {
		name   string
		text   string
		reason string
	}{
		{name: "empty", text: "", reason: "empty descriptor"},
		{name: "not braced", text: "tiny", reason: "expected '{'"},
		{name: "missing field", text: "{1 rows, 2 cpu, 3 io, 4 network}", reason: "expected ','"},
		{name: "wrong unit order", text: "{1 cpu, 2 rows, 3 io, 4 network, 5 memory}", reason: `expected unit "rows"`},
		{name: "infinite value", text: "{Infinity rows, 2 cpu, 3 io, 4 network, 5 memory}", reason: "expected number for rows"},
		{name: "overflowing value", text: "{1e999 rows, 2 cpu, 3 io, 4 network, 5 memory}", reason: "not a finite number"},
		{name: "unterminated", text: "{1 rows, 2 cpu, 3 io, 4 network, 5 memory", reason: "expected '}'"},
		{name: "trailing text", text: "{tiny} extra", reason: "unexpected text"},
		{name: "missing unit", text: "{1, 2 cpu, 3 io, 4 network, 5 memory}", reason: `expected unit "rows"`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse(tc.text)
			require.Error(t, err)

			var malformed *MalformedCostError
			require.True(t, errors.As(err, &malformed))
			assert.Equal(t, tc.text, malformed.Text)
			assert.Contains(t, malformed.Reason, tc.reason)
		})
	}
}

func TestCumulative_String(t *testing.T) {
	assert.Equal(t, "{tiny}", Cumulative{}.String())

	c := Cumulative{Rows: 20988.07, CPU: 409286.37, IO: 132200, Network: 132200.2, Memory: 139603.2}
	assert.Equal(t, "{20988.07 rows, 409286.37 cpu, 132200 io, 132200.2 network, 139603.2 memory}", c.String())

	parsed, err := Parse(c.String())
	require.NoError(t, err)
	assert.Equal(t, c, parsed)
}

func TestCumulative_IsTrivial(t *testing.T) {
	assert.True(t, Cumulative{}.IsTrivial())
	assert.False(t, Cumulative{Memory: 0.5}.IsTrivial())
}
