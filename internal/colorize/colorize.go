package colorize

import (
	"fmt"

	"fortio.org/safecast"

	"tinge/internal/lang"
	"tinge/internal/style"
)

// Colorizer scans lines of one language variant. The only carry between
// calls is the explicit State value: given the same line, prior state
// and mode tables, Line always produces the same spans and next state,
// so a host may restart the scan at any line whose prior state it kept.
type Colorizer struct {
	mode *lang.Mode
	tag  [tagCap]byte
}

// New returns a colorizer over the given mode's word tables. The mode
// is read, never mutated.
func New(mode *lang.Mode) *Colorizer {
	return &Colorizer{mode: mode}
}

// Mode returns the mode the colorizer was built with.
func (cz *Colorizer) Mode() *lang.Mode {
	return cz.mode
}

// Line colorizes one line given the state the previous line ended in,
// appending styled spans to spans and returning the grown set plus the
// state to feed the next line. Unstyled gaps default to Text. The call
// cannot fail: malformed input degrades to a construct staying open.
func (cz *Colorizer) Line(prev State, line []rune, spans style.SpanSet) (style.SpanSet, State) {
	sc := scanner{cz: cz, line: line, spans: spans, st: prev}
	sc.run()
	return sc.spans, sc.st
}

type scanner struct {
	cz    *Colorizer
	line  []rune
	i     int
	spans style.SpanSet
	st    State
}

// ResumeClosed reports whether scanning line from prev closes the
// construct prev carries somewhere within the line, even when a new
// construct of the same kind opens later on it. Hosts tracking where
// the currently open construct began use this to tell continuation
// apart from close-and-reopen.
func (cz *Colorizer) ResumeClosed(prev State, line []rune) bool {
	if prev.Idle() {
		return false
	}
	sc := scanner{cz: cz, line: line, st: prev}
	sc.resume()
	return sc.st.Idle() || sc.st.Open != prev.Open
}

// run re-enters the body of whatever construct the previous line left
// open, then hands the rest of the line to the idle dispatch.
func (sc *scanner) run() {
	sc.resume()
	sc.scan()
}

func (sc *scanner) resume() {
	switch sc.st.Open {
	case CommentComment:
		sc.pairBody(0, "comment", style.Comment)
	case CoComment:
		sc.pairBody(0, "co", style.Comment)
	case NoteComment:
		sc.noteBody(0)
	case PrPragmat:
		sc.pairBody(0, "pr", style.Preprocess)
	case BraceComment:
		sc.braceBody(0)
	case CharComment:
		sc.charBody(0, sc.st.Delim)
	case OpenString:
		sc.stringBody(0)
	case BrokenTag:
		sc.resumeBrokenTag()
	}
}

func (sc *scanner) scan() {
	for sc.i < len(sc.line) {
		start := sc.i
		c := sc.line[sc.i]
		sc.i++
		switch {
		case c == delimSharp || c == delimCent || c == delimPound:
			sc.st = State{Open: CharComment, Delim: c}
			sc.charBody(start, c)
		case c == '{':
			sc.st = State{Open: BraceComment, Level: 1}
			sc.braceBody(start)
		case c == '"':
			sc.stringBody(start)
		case c == '$':
			// format strings are passed through as plain text
		case isDigit(c):
			sc.numberBody(start)
		case isASCIILetter(c):
			sc.word(start)
		}
	}
}

// charBody consumes a single-character comment: everything through the
// next occurrence of delim, or the rest of the line.
func (sc *scanner) charBody(start int, delim rune) {
	for sc.i < len(sc.line) {
		c := sc.line[sc.i]
		sc.i++
		if c == delim {
			sc.st = State{}
			break
		}
	}
	sc.emit(start, sc.i, style.Comment)
}

// braceBody consumes a `{ ... }` comment, tracking nesting depth in
// the carried state.
func (sc *scanner) braceBody(start int) {
	level := sc.st.Level
	for sc.i < len(sc.line) {
		c := sc.line[sc.i]
		sc.i++
		if c == '{' {
			level++
		} else if c == '}' {
			level--
			if level == 0 {
				sc.st = State{}
				break
			}
		}
	}
	if !sc.st.Idle() {
		sc.st.Level = level
	}
	sc.emit(start, sc.i, style.Comment)
}

// stringBody consumes a string or character literal. A backslash as the
// very last code point keeps the literal open across the line break;
// escape sequences are otherwise not interpreted.
func (sc *scanner) stringBody(start int) {
	for sc.i < len(sc.line) {
		c := sc.line[sc.i]
		sc.i++
		if c == '\\' && sc.i == len(sc.line) {
			sc.st = State{Open: OpenString}
			break
		}
		if c == '"' {
			sc.st = State{}
			break
		}
	}
	sc.emit(start, sc.i, style.String)
}

// numberBody consumes a numeric literal: alphanumerics, '.', and an
// exponent sign directly after e/E.
func (sc *scanner) numberBody(start int) {
	for sc.i < len(sc.line) {
		c := sc.line[sc.i]
		if isAlnum(c) || c == '.' {
			sc.i++
			continue
		}
		if (c == '+' || c == '-') && foldASCII(sc.line[sc.i-1]) == 'e' {
			sc.i++
			continue
		}
		break
	}
	sc.emit(start, sc.i, style.Number)
}

// word handles a tag starting at line[start]: line-continuation breaks,
// the four keyword-delimited comment openers, then ordinary keyword /
// type / function / identifier classification.
func (sc *scanner) word(start int) {
	word, adv, hasUpper := extractTag(&sc.cz.tag, sc.line, start)
	sc.i = start + adv
	n := len(sc.line)

	if sc.i == n-1 && sc.line[sc.i] == '\\' {
		// tag split across the line break; classify what we have now
		sc.i++
		sc.st = State{Open: BrokenTag}
		sc.emit(start, sc.i, brokenTagKind(hasUpper))
		return
	}

	switch word {
	case "note":
		sc.emit(start, sc.i, style.Keyword)
		sc.st = State{Open: NoteComment, Level: 1}
		sc.noteBody(sc.i)
	case "comment":
		sc.emit(start, sc.i, style.Keyword)
		sc.st = State{Open: CommentComment}
		sc.pairBody(sc.i, "comment", style.Comment)
	case "co":
		sc.emit(start, sc.i, style.Keyword)
		sc.st = State{Open: CoComment}
		sc.pairBody(sc.i, "co", style.Comment)
	case "pr":
		sc.emit(start, sc.i, style.Preprocess)
		sc.st = State{Open: PrPragmat}
		sc.pairBody(sc.i, "pr", style.Preprocess)
	default:
		sc.plainWord(start, word, hasUpper)
	}
}

func (sc *scanner) plainWord(start int, word string, hasUpper bool) {
	switch {
	case sc.cz.mode.HasKeyword(word):
		sc.emit(start, sc.i, style.Keyword)
	case sc.cz.mode.HasType(word) || hasUpper:
		sc.emit(start, sc.i, style.Type)
	default:
		kind := style.Identifier
		k := sc.i
		if k < len(sc.line) && isBlank(sc.line[k]) {
			k++
		}
		if k < len(sc.line) && sc.line[k] == '(' {
			if k+1 >= len(sc.line) || sc.line[k+1] != '*' {
				kind = style.Function
			}
		}
		sc.emit(start, sc.i, kind)
	}
}

// pairBody consumes a keyword-delimited body that closes on the next
// occurrence of the same keyword, re-colored as keyword. COMMENT, CO
// and PR do not nest.
func (sc *scanner) pairBody(start int, closer string, body style.Kind) {
	for sc.i < len(sc.line) {
		c := sc.line[sc.i]
		sc.i++
		if !isASCIILetter(c) {
			continue
		}
		j := sc.i - 1
		word, adv, _ := extractTag(&sc.cz.tag, sc.line, j)
		sc.i = j + adv
		if word == closer {
			sc.emit(start, j, body)
			sc.emit(j, sc.i, style.Keyword)
			sc.st = State{}
			return
		}
	}
	sc.emit(start, sc.i, body)
}

// noteBody consumes a NOTE body: nested NOTE increments the level, ETON
// decrements it, and the comment closes only at level zero, with the
// closing ETON re-colored as keyword.
func (sc *scanner) noteBody(start int) {
	level := sc.st.Level
	for sc.i < len(sc.line) {
		c := sc.line[sc.i]
		sc.i++
		if !isASCIILetter(c) {
			continue
		}
		j := sc.i - 1
		word, adv, _ := extractTag(&sc.cz.tag, sc.line, j)
		sc.i = j + adv
		switch word {
		case "note":
			level++
		case "eton":
			level--
			if level == 0 {
				sc.emit(start, j, style.Comment)
				sc.emit(j, sc.i, style.Keyword)
				sc.st = State{}
				return
			}
		}
	}
	sc.st.Level = level
	sc.emit(start, sc.i, style.Comment)
}

// resumeBrokenTag finishes a tag split by a trailing backslash. The
// fragment on this line is classified by its own letter case and never
// re-merges with the carried half into one token.
func (sc *scanner) resumeBrokenTag() {
	sc.st = State{}
	if len(sc.line) == 0 || !isWordRune(sc.line[0]) {
		return
	}
	_, adv, hasUpper := extractTag(&sc.cz.tag, sc.line, 0)
	sc.i = adv
	if sc.i == len(sc.line)-1 && sc.line[sc.i] == '\\' {
		sc.i++
		sc.st = State{Open: BrokenTag}
	}
	sc.emit(0, sc.i, brokenTagKind(hasUpper))
}

func brokenTagKind(hasUpper bool) style.Kind {
	if hasUpper {
		return style.Type
	}
	return style.Identifier
}

func (sc *scanner) emit(start, end int, kind style.Kind) {
	if start >= end {
		return
	}
	sc.spans = sc.spans.Append(u32(start), u32(end), kind)
}

func isASCIILetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isAlnum(r rune) bool {
	return isASCIILetter(r) || isDigit(r)
}

func foldASCII(r rune) rune {
	if r >= 'A' && r <= 'Z' {
		return r + ('a' - 'A')
	}
	return r
}

func u32(v int) uint32 {
	u, err := safecast.Conv[uint32](v)
	if err != nil {
		panic(fmt.Errorf("span offset overflow: %w", err))
	}
	return u
}
