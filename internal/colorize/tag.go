package colorize

import "unicode"

// tagCap bounds the scratch buffer for one extracted tag. Words longer
// than tagCap-1 characters are stored truncated but consumed in full.
const tagCap = 16

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func isBlank(r rune) bool {
	return r == ' ' || r == '\t'
}

// extractTag reads the maximal word run starting at line[start], which
// the caller guarantees is a word character. ASCII uppercase letters
// are folded to lowercase before being stored; hasUpper reports whether
// any fold happened. The scan never stops early: even once buf is full
// the run is consumed to its true end, so advance is always the full
// length of the word in source positions, at least 1. The stored prefix
// holds at most tagCap-1 characters.
func extractTag(buf *[tagCap]byte, line []rune, start int) (word string, advance int, hasUpper bool) {
	pos := 0
	j := start
	c := line[j]
	for {
		if pos+1 < len(buf) {
			if c >= 'A' && c <= 'Z' {
				hasUpper = true
				c += 'a' - 'A'
			}
			buf[pos] = byte(c)
			pos++
		}
		j++
		if j >= len(line) {
			break
		}
		c = line[j]
		if !isWordRune(c) {
			break
		}
	}
	return string(buf[:pos]), j - start, hasUpper
}
