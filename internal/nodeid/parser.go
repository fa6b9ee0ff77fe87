package nodeid

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// operatorRegex matches a canonical operator id, e.g. `00-03`.
var operatorRegex = regexp.MustCompile(`^(\d+)-(\d+)$`)

// Unquote strips one pair of wrapping quote characters (" or ') from s.
func Unquote(s string) string {
	if len(s) >= 2 {
		first, last := s[0], s[len(s)-1]
		if first == last && (first == '"' || first == '\'') {
			return s[1 : len(s)-1]
		}
	}
	return s
}

// Parse creates an OperatorID from its string representation.
func Parse(rawID string) (OperatorID, error) {
	id := strings.TrimSpace(Unquote(strings.TrimSpace(rawID)))
	if id == "" {
		return OperatorID{}, fmt.Errorf("operator id cannot be empty")
	}

	matches := operatorRegex.FindStringSubmatch(id)
	if matches == nil {
		return OperatorID{}, fmt.Errorf("invalid operator id format: %q", rawID)
	}

	fragment, err := strconv.Atoi(matches[1])
	if err != nil {
		return OperatorID{}, fmt.Errorf("invalid fragment in operator id %q: %w", rawID, err)
	}
	operator, err := strconv.Atoi(matches[2])
	if err != nil {
		return OperatorID{}, fmt.Errorf("invalid operator in operator id %q: %w", rawID, err)
	}
	return OperatorID{Fragment: fragment, Operator: operator}, nil
}

// Compare orders raw ids: parsable operator ids first, by fragment and
// operator, then everything else lexicographically.
func Compare(a, b string) int {
	idA, errA := Parse(a)
	idB, errB := Parse(b)
	switch {
	case errA == nil && errB == nil:
		if c := idA.Compare(idB); c != 0 {
			return c
		}
		return strings.Compare(a, b)
	case errA == nil:
		return -1
	case errB == nil:
		return 1
	}
	return strings.Compare(a, b)
}
