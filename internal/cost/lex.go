package cost

import (
	"github.com/viant/parsly"
	"github.com/viant/parsly/matcher"
)

const (
	whitespaceToken int = iota
	tinyToken
	openToken
	closeToken
	commaToken
	numberToken
	unitToken
)

var whitespaceMatcher = parsly.NewToken(whitespaceToken, "Whitespace", matcher.NewWhiteSpace())
var tinyMatcher = parsly.NewToken(tinyToken, "Tiny", matcher.NewFragment(tinyText))
var openMatcher = parsly.NewToken(openToken, "{", matcher.NewByte('{'))
var closeMatcher = parsly.NewToken(closeToken, "}", matcher.NewByte('}'))
var commaMatcher = parsly.NewToken(commaToken, ",", matcher.NewByte(','))
var numberMatcher = parsly.NewToken(numberToken, "Number", &numberMatch{})
var unitMatcher = parsly.NewToken(unitToken, "Unit", &unitMatch{})

// numberMatch matches a decimal float with an optional sign, fraction and
// exponent. Words such as Infinity or NaN never match.
type numberMatch struct{}

func (n *numberMatch) Match(cursor *parsly.Cursor) (matched int) {
	input := cursor.Input
	pos := cursor.Pos
	size := cursor.InputSize
	if pos < size && (input[pos] == '-' || input[pos] == '+') {
		pos++
	}
	digits := 0
	for pos < size && isDigit(input[pos]) {
		pos++
		digits++
	}
	if pos < size && input[pos] == '.' {
		pos++
		for pos < size && isDigit(input[pos]) {
			pos++
			digits++
		}
	}
	if digits == 0 {
		return 0
	}
	if pos < size && (input[pos] == 'e' || input[pos] == 'E') {
		exp := pos + 1
		if exp < size && (input[exp] == '-' || input[exp] == '+') {
			exp++
		}
		if exp < size && isDigit(input[exp]) {
			for exp < size && isDigit(input[exp]) {
				exp++
			}
			pos = exp
		}
	}
	return pos - cursor.Pos
}

// unitMatch matches a lower or upper case unit label such as "rows".
type unitMatch struct{}

func (u *unitMatch) Match(cursor *parsly.Cursor) (matched int) {
	for i := cursor.Pos; i < cursor.InputSize; i++ {
		b := cursor.Input[i]
		if b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' {
			matched++
			continue
		}
		return matched
	}
	return matched
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r' || b == '\v' || b == '\f'
}
