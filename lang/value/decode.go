package value

import (
	"fmt"
	"strings"
)

// entities maps the five XML escape sequences IPPcode23 string literals may
// contain to the character they denote. Order does not matter: the decoder
// scans left to right and each match is self-contained.
var entities = map[string]rune{
	"lt":   '<',
	"gt":   '>',
	"amp":  '&',
	"quot": '"',
	"apos": '\'',
}

// DecodeString resolves the XML entity escapes (&lt; &gt; &amp; &quot;
// &apos;) and the numeric escape \DDD (exactly three decimal digits,
// interpreted as a Unicode code point) in a raw source literal, producing
// the text a WRITE of the decoded value would emit.
//
// The decoder works in one left-to-right pass and never reinterprets text
// it has already written within a call. A '&' that does not start one of
// the five entities is copied as is; a '\' not followed by three decimal
// digits is an error. Decoding the output a second time returns it
// unchanged unless that output itself contains an entity or a backslash
// (for example when the source encoded "&amp;lt;", which decodes to
// "&lt;").
func DecodeString(src string) (string, error) {
	var sb strings.Builder
	sb.Grow(len(src))

	runes := []rune(src)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch r {
		case '&':
			name, n, ok := matchEntity(runes[i:])
			if !ok {
				sb.WriteRune(r)
				continue
			}
			sb.WriteRune(entities[name])
			i += n - 1
		case '\\':
			cp, n, ok := matchNumericEscape(runes[i:])
			if !ok {
				return "", fmt.Errorf("value: invalid \\DDD escape at offset %d", i)
			}
			sb.WriteRune(cp)
			i += n - 1
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String(), nil
}

// matchEntity checks whether runes begins with one of the five recognized
// "&name;" entities, returning the entity name, the number of runes it
// spans (including '&' and ';'), and whether a match was found.
func matchEntity(runes []rune) (name string, n int, ok bool) {
	semi := -1
	for i := 1; i < len(runes) && i <= 6; i++ {
		if runes[i] == ';' {
			semi = i
			break
		}
	}
	if semi < 0 {
		return "", 0, false
	}
	name = string(runes[1:semi])
	if _, ok := entities[name]; !ok {
		return "", 0, false
	}
	return name, semi + 1, true
}

// matchNumericEscape checks whether runes begins with '\' followed by
// exactly three decimal digits, returning the decoded code point, the
// number of runes consumed (always 4 on success), and whether it matched.
func matchNumericEscape(runes []rune) (cp rune, n int, ok bool) {
	if len(runes) < 4 {
		return 0, 0, false
	}
	var val int
	for i := 1; i <= 3; i++ {
		d := runes[i]
		if d < '0' || d > '9' {
			return 0, 0, false
		}
		val = val*10 + int(d-'0')
	}
	return rune(val), 4, true
}
