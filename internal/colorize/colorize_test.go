package colorize_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"tinge/internal/colorize"
	"tinge/internal/lang"
	"tinge/internal/style"
	"tinge/internal/testkit"
)

// scanLines colorizes every line from state zero, returning the spans
// and the state after each line.
func scanLines(lines []string) ([]style.SpanSet, []colorize.State) {
	cz := colorize.New(lang.Algol68)
	spans := make([]style.SpanSet, len(lines))
	states := make([]colorize.State, len(lines))
	var st colorize.State
	for i, line := range lines {
		spans[i], st = cz.Line(st, []rune(line), nil)
		states[i] = st
	}
	return spans, states
}

// kindAt resolves the per-character classification the span set implies.
func kindAt(ss style.SpanSet, col uint32) style.Kind {
	return ss.At(col)
}

func expectSpans(t *testing.T, got style.SpanSet, want []style.Span) {
	t.Helper()
	if diff := cmp.Diff(want, []style.Span(got)); diff != "" {
		t.Errorf("spans mismatch (-want +got):\n%s", diff)
	}
}

func TestBalancedBraceComment(t *testing.T) {
	spans, states := scanLines([]string{"{ a {b} c }"})
	if !states[0].Idle() {
		t.Fatalf("expected idle state after balanced comment, got %+v", states[0])
	}
	expectSpans(t, spans[0], []style.Span{
		{Start: 0, End: 11, Kind: style.Comment},
	})
}

func TestUnterminatedBraceComment(t *testing.T) {
	spans, states := scanLines([]string{"{ unterminated", ""})
	want := colorize.State{Open: colorize.BraceComment, Level: 1}
	if states[0] != want {
		t.Fatalf("after line 0: got %+v, want %+v", states[0], want)
	}
	if states[1] != want {
		t.Errorf("empty line must preserve the open comment, got %+v", states[1])
	}
	expectSpans(t, spans[0], []style.Span{
		{Start: 0, End: 14, Kind: style.Comment},
	})
	if len(spans[1]) != 0 {
		t.Errorf("empty line should emit no spans, got %v", spans[1])
	}
}

func TestBraceCommentNesting(t *testing.T) {
	_, states := scanLines([]string{"{ outer { inner"})
	want := colorize.State{Open: colorize.BraceComment, Level: 2}
	if states[0] != want {
		t.Fatalf("got %+v, want %+v", states[0], want)
	}

	spans, states := scanLines([]string{"{ {", "} } tail"})
	if !states[1].Idle() {
		t.Fatalf("comment should close on second line, got %+v", states[1])
	}
	if got := kindAt(spans[1], 2); got != style.Comment {
		t.Errorf("closing brace styled %v, want comment", got)
	}
	if got := kindAt(spans[1], 4); got != style.Identifier {
		t.Errorf("tail word styled %v, want identifier", got)
	}
}

func TestNoteCommentNesting(t *testing.T) {
	spans, states := scanLines([]string{"NOTE outer NOTE inner ETON", "ETON x"})

	want := colorize.State{Open: colorize.NoteComment, Level: 1}
	if states[0] != want {
		t.Fatalf("after line 0: got %+v, want %+v", states[0], want)
	}
	if !states[1].Idle() {
		t.Fatalf("comment must close on the second ETON, got %+v", states[1])
	}

	// opener is a keyword, body comment
	if got := kindAt(spans[0], 0); got != style.Keyword {
		t.Errorf("NOTE opener styled %v, want keyword", got)
	}
	if got := kindAt(spans[0], 5); got != style.Comment {
		t.Errorf("body styled %v, want comment", got)
	}
	// inner ETON only drops the level, stays comment
	if got := kindAt(spans[0], 22); got != style.Comment {
		t.Errorf("inner ETON styled %v, want comment", got)
	}

	// closing ETON re-colored as keyword, tail scanned normally
	if got := kindAt(spans[1], 0); got != style.Keyword {
		t.Errorf("closing ETON styled %v, want keyword", got)
	}
	if got := kindAt(spans[1], 5); got != style.Identifier {
		t.Errorf("tail styled %v, want identifier", got)
	}
}

func TestPairedKeywordComments(t *testing.T) {
	tests := []struct {
		name  string
		line  string
		open  colorize.Construct
		body  style.Kind
		split string // two-line variant: opener line, then closer line
	}{
		{"comment", "COMMENT body COMMENT x", colorize.CommentComment, style.Comment, "COMMENT body"},
		{"co", "CO body CO x", colorize.CoComment, style.Comment, "CO body"},
		{"pr", "PR include prelude PR x", colorize.PrPragmat, style.Preprocess, "PR body"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// closes within one line
			spans, states := scanLines([]string{tt.line})
			if !states[0].Idle() {
				t.Fatalf("expected close within line, got %+v", states[0])
			}
			opener := uint32(len(tt.name)) // NOTE: tt.name equals the folded opener
			if got := kindAt(spans[0], opener+1); got != tt.body {
				t.Errorf("body styled %v, want %v", got, tt.body)
			}
			tail := uint32(len([]rune(tt.line))) - 1
			if got := kindAt(spans[0], tail); got != style.Identifier {
				t.Errorf("tail styled %v, want identifier", got)
			}

			// stays open across the line break
			_, states = scanLines([]string{tt.split})
			if states[0].Open != tt.open {
				t.Fatalf("got open construct %v, want %v", states[0].Open, tt.open)
			}
		})
	}
}

func TestPrOpenerStyledAsDirective(t *testing.T) {
	spans, _ := scanLines([]string{"PR heap=32k PR"})
	if got := kindAt(spans[0], 0); got != style.Preprocess {
		t.Errorf("PR opener styled %v, want preprocess", got)
	}
	if got := kindAt(spans[0], 4); got != style.Preprocess {
		t.Errorf("pragmat body styled %v, want preprocess", got)
	}
	if got := kindAt(spans[0], 12); got != style.Keyword {
		t.Errorf("PR closer styled %v, want keyword", got)
	}
}

func TestCharComments(t *testing.T) {
	tests := []struct {
		name  string
		delim string
	}{
		{"sharp", "#"},
		{"cent", "¢"},
		{"pound", "£"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// closed on the same line
			line := tt.delim + " remark " + tt.delim + " x"
			spans, states := scanLines([]string{line})
			if !states[0].Idle() {
				t.Fatalf("comment should close, got %+v", states[0])
			}
			if got := kindAt(spans[0], 0); got != style.Comment {
				t.Errorf("delimiter styled %v, want comment", got)
			}
			tail := uint32(len([]rune(line))) - 1
			if got := kindAt(spans[0], tail); got != style.Identifier {
				t.Errorf("tail styled %v, want identifier", got)
			}

			// left open: the exact delimiter is remembered
			_, states = scanLines([]string{tt.delim + " open"})
			want := colorize.State{Open: colorize.CharComment, Delim: []rune(tt.delim)[0]}
			if states[0] != want {
				t.Fatalf("got %+v, want %+v", states[0], want)
			}
		})
	}
}

func TestCharCommentResumeKeepsDelimiter(t *testing.T) {
	// A '#' inside an open cent comment must not close it.
	spans, states := scanLines([]string{"¢ open", "# not a closer ¢ x"})
	if !states[1].Idle() {
		t.Fatalf("cent comment should close on line 1, got %+v", states[1])
	}
	if got := kindAt(spans[1], 0); got != style.Comment {
		t.Errorf("resumed body styled %v, want comment", got)
	}
	if got := kindAt(spans[1], 17); got != style.Identifier {
		t.Errorf("tail styled %v, want identifier", got)
	}
}

func TestStringLiterals(t *testing.T) {
	t.Run("closed", func(t *testing.T) {
		spans, states := scanLines([]string{`print("hi")`})
		if !states[0].Idle() {
			t.Fatalf("got %+v", states[0])
		}
		if got := kindAt(spans[0], 6); got != style.String {
			t.Errorf("quote styled %v, want string", got)
		}
		if got := kindAt(spans[0], 0); got != style.Function {
			t.Errorf("call site styled %v, want function", got)
		}
	})

	t.Run("eol escape keeps it open", func(t *testing.T) {
		spans, states := scanLines([]string{`"abc\`, `def"x`})
		if states[0].Open != colorize.OpenString {
			t.Fatalf("after line 0: got %+v, want open string", states[0])
		}
		if !states[1].Idle() {
			t.Fatalf("string should close on line 1, got %+v", states[1])
		}
		if got := kindAt(spans[1], 0); got != style.String {
			t.Errorf("continuation styled %v, want string", got)
		}
		if got := kindAt(spans[1], 4); got != style.Identifier {
			t.Errorf("tail styled %v, want identifier", got)
		}
	})

	t.Run("unterminated without escape does not carry", func(t *testing.T) {
		_, states := scanLines([]string{`"abc`})
		if !states[0].Idle() {
			t.Errorf("string without trailing escape must not stay open, got %+v", states[0])
		}
	})

	t.Run("escaped quote mid-line is not special", func(t *testing.T) {
		// escape interpretation is limited to the end-of-line check
		spans, states := scanLines([]string{`"a\"b`})
		if !states[0].Idle() {
			t.Fatalf("got %+v", states[0])
		}
		expectSpans(t, spans[0], []style.Span{
			{Start: 0, End: 4, Kind: style.String},
			{Start: 4, End: 5, Kind: style.Identifier},
		})
	})
}

func TestNumbers(t *testing.T) {
	tests := []struct {
		line string
		end  uint32 // exclusive end of the number span
	}{
		{"0", 1},
		{"123", 3},
		{"3.14", 4},
		{"1e10", 4},
		{"2e+5", 4},
		{"2E-5", 4},
		{"16rff", 5},
		{"1.5e-3 x", 6},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			spans, states := scanLines([]string{tt.line})
			if !states[0].Idle() {
				t.Fatalf("got %+v", states[0])
			}
			if len(spans[0]) == 0 || spans[0][0].Kind != style.Number {
				t.Fatalf("expected leading number span, got %v", spans[0])
			}
			if spans[0][0].End != tt.end {
				t.Errorf("number span ends at %d, want %d", spans[0][0].End, tt.end)
			}
		})
	}

	t.Run("plus without exponent stops the literal", func(t *testing.T) {
		spans, _ := scanLines([]string{"1+2"})
		expectSpans(t, spans[0], []style.Span{
			{Start: 0, End: 1, Kind: style.Number},
			{Start: 2, End: 3, Kind: style.Number},
		})
	})
}

func TestWordClassification(t *testing.T) {
	tests := []struct {
		line string
		kind style.Kind
	}{
		{"begin", style.Keyword},
		{"proc", style.Keyword},
		{"int", style.Type},
		{"string", style.Type},
		{"Foo", style.Type},       // uppercase marks user-defined modes
		{"foo", style.Identifier}, // lowercase, not in any table
		{"foo(1)", style.Function},
		{"foo (1)", style.Function}, // one blank before the paren is fine
		{"foo(*x)", style.Identifier},
		{"INT", style.Type},
		{"Begin", style.Keyword}, // folded before lookup
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			spans, _ := scanLines([]string{tt.line})
			if len(spans[0]) == 0 {
				t.Fatalf("no spans for %q", tt.line)
			}
			if spans[0][0].Kind != tt.kind {
				t.Errorf("%q styled %v, want %v", tt.line, spans[0][0].Kind, tt.kind)
			}
		})
	}
}

func TestDollarPassesThrough(t *testing.T) {
	spans, states := scanLines([]string{"$5d$"})
	if !states[0].Idle() {
		t.Fatalf("got %+v", states[0])
	}
	if got := kindAt(spans[0], 0); got != style.Text {
		t.Errorf("$ styled %v, want text", got)
	}
}

func TestBrokenTagContinuation(t *testing.T) {
	t.Run("uppercase fragment", func(t *testing.T) {
		spans, states := scanLines([]string{`x := Foo\`, "bar end"})
		if states[0].Open != colorize.BrokenTag {
			t.Fatalf("after line 0: got %+v, want broken tag", states[0])
		}
		if got := kindAt(spans[0], 5); got != style.Type {
			t.Errorf("Foo styled %v, want type", got)
		}
		if !states[1].Idle() {
			t.Fatalf("continuation must clear, got %+v", states[1])
		}
		// the fragment is classified by its own case, not merged
		if got := kindAt(spans[1], 0); got != style.Identifier {
			t.Errorf("continuation fragment styled %v, want identifier", got)
		}
		if got := kindAt(spans[1], 4); got != style.Keyword {
			t.Errorf("tail keyword styled %v, want keyword", got)
		}
	})

	t.Run("fragment is not a comment opener", func(t *testing.T) {
		// 'co' carried over a break must not open a CO comment
		_, states := scanLines([]string{`c\`, "o x"})
		if !states[1].Idle() {
			t.Errorf("continuation fragment opened a construct: %+v", states[1])
		}
	})

	t.Run("non-word start cancels the carry", func(t *testing.T) {
		spans, states := scanLines([]string{`abc\`, "+ 1"})
		if !states[1].Idle() {
			t.Fatalf("got %+v", states[1])
		}
		if got := kindAt(spans[1], 2); got != style.Number {
			t.Errorf("rest of line styled %v, want number", got)
		}
	})
}

func TestRestartIdempotence(t *testing.T) {
	lines := []string{
		"begin # remark # int x;",
		"{ brace { nested }",
		"still open }",
		`s := "broken\`,
		`tail" + 16r1f;`,
		"NOTE todo NOTE deep",
		"ETON still note ETON proc p = void: skip;",
		`value\`,
		"Tail od end",
	}
	fullSpans, fullStates := scanLines(lines)

	for k := 1; k < len(lines); k++ {
		cz := colorize.New(lang.Algol68)
		st := fullStates[k-1]
		for i := k; i < len(lines); i++ {
			var spans style.SpanSet
			spans, st = cz.Line(st, []rune(lines[i]), nil)
			if diff := cmp.Diff([]style.Span(fullSpans[i]), []style.Span(spans)); diff != "" {
				t.Fatalf("restart at line %d drifted on line %d (-full +restart):\n%s", k, i, diff)
			}
			if st != fullStates[i] {
				t.Fatalf("restart at line %d: state after line %d = %+v, want %+v", k, i, st, fullStates[i])
			}
		}
	}
}

func TestSpansAreOrderedAndDisjoint(t *testing.T) {
	lines := []string{
		"proc fib = (int n) int:",
		"  if n < 2 then n else fib(n-1) + fib(n-2) fi; # classic #",
		"CO block CO { nested { } } NOTE n ETON",
	}
	spans, _ := scanLines(lines)
	for i, ss := range spans {
		if err := testkit.CheckSpanInvariants(ss, []rune(lines[i])); err != nil {
			t.Errorf("line %d: %v", i, err)
		}
	}
}

func TestResumeClosed(t *testing.T) {
	cz := colorize.New(lang.Algol68)
	tests := []struct {
		name string
		prev colorize.State
		line string
		want bool
	}{
		{"brace closes", colorize.State{Open: colorize.BraceComment, Level: 1}, "} code", true},
		{"brace closes then reopens", colorize.State{Open: colorize.BraceComment, Level: 1}, "} text {", true},
		{"brace continues", colorize.State{Open: colorize.BraceComment, Level: 1}, "still inside", false},
		{"char comment swaps delimiter", colorize.State{Open: colorize.CharComment, Delim: '¢'}, "end ¢ # open", true},
		{"string continues", colorize.State{Open: colorize.OpenString}, "no close here \\", false},
		{"idle carries nothing", colorize.State{}, "{ open", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cz.ResumeClosed(tt.prev, []rune(tt.line)); got != tt.want {
				t.Errorf("ResumeClosed(%+v, %q) = %v, want %v", tt.prev, tt.line, got, tt.want)
			}
		})
	}
}

func TestReportModeLacksExtensions(t *testing.T) {
	cz := colorize.New(lang.Algol68Report)
	spans, _ := cz.Line(colorize.State{}, []rune("module"), nil)
	// ga68 extension word: keyword in the default mode, identifier here
	if len(spans) == 0 || spans[0].Kind != style.Identifier {
		t.Fatalf("expected identifier in report mode, got %v", spans)
	}
}

func BenchmarkColorizeLine(b *testing.B) {
	cz := colorize.New(lang.Algol68)
	line := []rune(`begin int n := 16r2a; # remark # print(("fib", fib(n))) end { trailing }`)
	spans := make(style.SpanSet, 0, 16)
	b.ResetTimer()
	for b.Loop() {
		spans, _ = cz.Line(colorize.State{}, line, spans[:0])
	}
}

func BenchmarkColorizeBuffer(b *testing.B) {
	var sb strings.Builder
	for i := 0; i < 200; i++ {
		sb.WriteString("proc p = (int n) int: ( n + 1 ); # remark #\n")
		sb.WriteString("COMMENT spanning\n")
		sb.WriteString("several lines COMMENT skip;\n")
	}
	lines := strings.Split(sb.String(), "\n")
	cz := colorize.New(lang.Algol68)
	b.ResetTimer()
	for b.Loop() {
		var st colorize.State
		spans := make(style.SpanSet, 0, 16)
		for _, line := range lines {
			spans, st = cz.Line(st, []rune(line), spans[:0])
		}
	}
}
