package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"tinge/internal/style"
)

// CheckSpanInvariants runs the structural span invariants on one
// colorized line:
// 1) no span is empty
// 2) spans are in left-to-right order and never overlap
// 3) no span reaches past the end of the line
func CheckSpanInvariants(spans style.SpanSet, line []rune) error {
	n, err := safecast.Conv[uint32](len(line))
	if err != nil {
		return fmt.Errorf("line length overflow: %w", err)
	}

	var prev uint32
	for i, s := range spans {
		if s.Empty() {
			return fmt.Errorf("span %d is empty: %+v", i, s)
		}
		if s.Start < prev {
			return fmt.Errorf("span %d overlaps or is out of order: %+v after column %d", i, s, prev)
		}
		if s.End > n {
			return fmt.Errorf("span %d reaches past the line end %d: %+v", i, n, s)
		}
		prev = s.End
	}
	return nil
}
