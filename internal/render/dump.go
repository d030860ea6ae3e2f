package render

import (
	"encoding/json"
	"fmt"
	"io"

	"tinge/internal/driver"
	"tinge/internal/source"
)

type SpanOutput struct {
	Line  uint32 `json:"line"`
	Start uint32 `json:"start"`
	End   uint32 `json:"end"`
	Kind  string `json:"kind"`
	Text  string `json:"text,omitempty"`
}

// FormatSpansPretty writes one line per span in a human-readable form.
func FormatSpansPretty(w io.Writer, f *source.File, res *driver.FileResult) error {
	i := 0
	for lineNum := uint32(1); lineNum <= res.LineCount(); lineNum++ {
		line := []rune(f.GetLine(lineNum))
		for _, sp := range res.Lines[lineNum-1] {
			i++
			fmt.Fprintf(w, "%3d: %-12s at %d:%d-%d %q\n",
				i, sp.Kind.String(), lineNum, sp.Start, sp.End,
				string(line[sp.Start:sp.End]))
		}
	}
	if res.Unclosed != nil {
		fmt.Fprintf(w, "unclosed %s opened at line %d\n",
			res.Unclosed.Construct, res.Unclosed.Line)
	}
	return nil
}

// FormatSpansJSON writes every span as a flat JSON array.
func FormatSpansJSON(w io.Writer, f *source.File, res *driver.FileResult) error {
	output := []SpanOutput{}
	for lineNum := uint32(1); lineNum <= res.LineCount(); lineNum++ {
		line := []rune(f.GetLine(lineNum))
		for _, sp := range res.Lines[lineNum-1] {
			output = append(output, SpanOutput{
				Line:  lineNum,
				Start: sp.Start,
				End:   sp.End,
				Kind:  sp.Kind.String(),
				Text:  string(line[sp.Start:sp.End]),
			})
		}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(output)
}
