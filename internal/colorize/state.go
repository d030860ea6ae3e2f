package colorize

// Construct identifies a lexical construct that can stay open across a
// line break.
type Construct uint8

const (
	// None means the previous line ended in plain code.
	None Construct = iota
	// BraceComment is a `{ ... }` comment; these nest.
	BraceComment
	// CommentComment is a COMMENT ... COMMENT comment.
	CommentComment
	// CoComment is a CO ... CO comment.
	CoComment
	// CharComment is a single-character comment (`#`, `¢` or `£`)
	// closed by the next occurrence of the same delimiter.
	CharComment
	// NoteComment is a NOTE ... ETON comment; these nest.
	NoteComment
	// PrPragmat is a PR ... PR pragmat (directive) body.
	PrPragmat
	// OpenString is a string literal left open by a backslash at the
	// end of the line.
	OpenString
	// BrokenTag is an identifier split across the line break by a
	// trailing backslash.
	BrokenTag
)

// String returns a short name for span dumps and lint output.
func (c Construct) String() string {
	switch c {
	case None:
		return "none"
	case BraceComment:
		return "brace comment"
	case CommentComment:
		return "COMMENT comment"
	case CoComment:
		return "CO comment"
	case CharComment:
		return "character comment"
	case NoteComment:
		return "NOTE comment"
	case PrPragmat:
		return "PR pragmat"
	case OpenString:
		return "string"
	case BrokenTag:
		return "continued tag"
	}
	return "unknown"
}

// State is the carry between consecutive line scans. The zero value
// means "nothing open" and is the state for the first line of a buffer.
// At most one construct is open at a time: Delim is meaningful only for
// CharComment, Level only for BraceComment and NoteComment.
type State struct {
	Open  Construct
	Delim rune
	Level uint8
}

// Idle reports whether no construct is open.
func (s State) Idle() bool {
	return s.Open == None
}

// Packed-state layout: bits 0-3 construct, bits 4-5 delimiter code,
// bits 8-15 nesting level. The cent and pound delimiters get distinct
// codes, so a comment opened with one never resumes looking for the
// other.
const (
	packConstructMask = 0x0f
	packDelimShift    = 4
	packDelimMask     = 0x30
	packLevelShift    = 8
)

// Pack encodes the state into the single non-negative integer form
// hosts thread between line scans.
func (s State) Pack() uint32 {
	v := uint32(s.Open) & packConstructMask
	if s.Open == CharComment {
		v |= delimCode(s.Delim) << packDelimShift
	}
	if s.Open == BraceComment || s.Open == NoteComment {
		v |= uint32(s.Level) << packLevelShift
	}
	return v
}

// Unpack decodes a value produced by Pack. Values not produced by Pack
// yield an unspecified state, same as the contract for corrupted
// carries.
func Unpack(v uint32) State {
	s := State{Open: Construct(v & packConstructMask)}
	switch s.Open {
	case CharComment:
		s.Delim = delimRune((v & packDelimMask) >> packDelimShift)
	case BraceComment, NoteComment:
		s.Level = uint8(v >> packLevelShift)
	}
	return s
}

const (
	delimSharp = '#'
	delimCent  = '¢'
	delimPound = '£'
)

func delimCode(r rune) uint32 {
	switch r {
	case delimCent:
		return 1
	case delimPound:
		return 2
	default:
		return 0
	}
}

func delimRune(code uint32) rune {
	switch code {
	case 1:
		return delimCent
	case 2:
		return delimPound
	default:
		return delimSharp
	}
}
