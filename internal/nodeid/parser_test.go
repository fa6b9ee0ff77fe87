package nodeid

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	testCases := []struct {
		name       string
		rawID      string
		expectErr  bool
		expectedID OperatorID
	}{
		{
			name:       "canonical id",
			rawID:      "00-03",
			expectedID: OperatorID{Fragment: 0, Operator: 3},
		},
		{
			name:       "double quoted",
			rawID:      `"02-11"`,
			expectedID: OperatorID{Fragment: 2, Operator: 11},
		},
		{
			name:       "single quoted with spaces",
			rawID:      " '1-2' ",
			expectedID: OperatorID{Fragment: 1, Operator: 2},
		},
		{
			name:      "error - empty string",
			rawID:     "",
			expectErr: true,
		},
		{
			name:      "error - empty quotes",
			rawID:     `""`,
			expectErr: true,
		},
		{
			name:      "error - missing operator",
			rawID:     "00-",
			expectErr: true,
		},
		{
			name:      "error - not numeric",
			rawID:     "scan-1",
			expectErr: true,
		},
		{
			name:      "error - overflowing fragment",
			rawID:     "99999999999999999999-1",
			expectErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			id, err := Parse(tc.rawID)

			if tc.expectErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.expectedID, id)
		})
	}
}

func TestOperatorID_String(t *testing.T) {
	assert.Equal(t, "00-03", OperatorID{Operator: 3}.String())
	assert.Equal(t, "12-105", OperatorID{Fragment: 12, Operator: 105}.String())

	id, err := Parse(OperatorID{Fragment: 4, Operator: 7}.String())
	require.NoError(t, err)
	assert.Equal(t, OperatorID{Fragment: 4, Operator: 7}, id)
}

func TestUnquote(t *testing.T) {
	assert.Equal(t, "a", Unquote(`"a"`))
	assert.Equal(t, "a", Unquote(`'a'`))
	assert.Equal(t, `"a'`, Unquote(`"a'`))
	assert.Equal(t, `"`, Unquote(`"`))
	assert.Equal(t, "", Unquote(`""`))
	assert.Equal(t, "plain", Unquote("plain"))
}

func TestCompare(t *testing.T) {
	ids := []string{"zeta", "01-02", "00-10", "alpha", "00-02", `"00-05"`}
	slices.SortFunc(ids, Compare)
	assert.Equal(t, []string{"00-02", `"00-05"`, "00-10", "01-02", "alpha", "zeta"}, ids)
}
