package render

import (
	"fmt"
	"io"
	"strings"

	"tinge/internal/driver"
	"tinge/internal/source"
	"tinge/internal/style"
)

// Options controls how a colorized file is written out.
type Options struct {
	// Theme supplies per-kind styles; nil means DefaultTheme.
	Theme Theme
	// Color disables all styling when false, leaving plain text.
	Color bool
	// Gutter prefixes each line with a right-aligned line number.
	Gutter bool
}

func (o Options) theme() Theme {
	if o.Theme != nil {
		return o.Theme
	}
	return DefaultTheme()
}

// WriteFile renders every line of a highlight result to w.
func WriteFile(w io.Writer, f *source.File, res *driver.FileResult, opts Options) error {
	theme := opts.theme()
	n := res.LineCount()
	width := len(fmt.Sprint(n))

	for lineNum := uint32(1); lineNum <= n; lineNum++ {
		if opts.Gutter {
			if _, err := fmt.Fprintf(w, "%*d  ", width, lineNum); err != nil {
				return err
			}
		}
		line := Line([]rune(f.GetLine(lineNum)), res.Lines[lineNum-1], theme, opts.Color)
		if _, err := io.WriteString(w, line+"\n"); err != nil {
			return err
		}
	}
	return nil
}

// Line renders one line of runes with its spans applied. Gaps between
// spans pass through unstyled, as does everything when color is off.
func Line(line []rune, spans style.SpanSet, theme Theme, color bool) string {
	if !color || len(spans) == 0 {
		return string(line)
	}

	var sb strings.Builder
	var cur uint32
	for _, sp := range spans {
		if sp.Start > cur {
			sb.WriteString(string(line[cur:sp.Start]))
		}
		seg := string(line[sp.Start:sp.End])
		if st, ok := theme[sp.Kind]; ok {
			sb.WriteString(st.Render(seg))
		} else {
			sb.WriteString(seg)
		}
		cur = sp.End
	}
	if int(cur) < len(line) {
		sb.WriteString(string(line[cur:]))
	}
	return sb.String()
}
