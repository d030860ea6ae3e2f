package driver

import (
	"fmt"
	"path/filepath"
	"strings"

	"tinge/internal/colorize"
	"tinge/internal/lang"
	"tinge/internal/source"
	"tinge/internal/style"
)

// Options configures a highlight run.
type Options struct {
	// Registry supplies the known modes; nil means lang.Builtin().
	Registry *lang.Registry
	// Mode forces a mode by name instead of extension lookup.
	Mode string
	// Encoding selects the input byte encoding.
	Encoding source.Encoding
	// Cache, when set, records state checkpoints per file.
	Cache *StateCache
	// Events, when set, receives per-file progress notifications.
	Events chan<- Event
}

func (o Options) registry() *lang.Registry {
	if o.Registry != nil {
		return o.Registry
	}
	return lang.Builtin()
}

func (o Options) encoding() source.Encoding {
	if o.Encoding == "" {
		return source.EncodingUTF8
	}
	return o.Encoding
}

// Unclosed describes a construct still open at end of file.
type Unclosed struct {
	Line      uint32 // 1-based line where the construct opened
	Construct colorize.Construct
}

// FileResult holds the colorized view of one file: spans and the
// carried state per line, in line order.
type FileResult struct {
	Path   string
	FileID source.FileID
	Mode   *lang.Mode
	Lines  []style.SpanSet
	States []colorize.State // state after each line
	// Unclosed is non-nil when a construct is still open at EOF.
	Unclosed *Unclosed
}

// LineCount returns the number of colorized lines.
func (r *FileResult) LineCount() uint32 {
	return uint32(len(r.Lines))
}

// HighlightFile loads one file into fs and colorizes every line,
// threading the carried state from line to line.
func HighlightFile(fs *source.FileSet, path string, opts Options) (*FileResult, error) {
	id, err := fs.Load(path, opts.encoding())
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	mode, err := pickMode(path, opts)
	if err != nil {
		return nil, err
	}
	res := colorizeFile(fs.Get(id), mode)
	res.Path = path
	if opts.Cache != nil {
		if err := opts.Cache.Put(fs.Get(id).Hash, res.States); err != nil {
			return nil, fmt.Errorf("cache %s: %w", path, err)
		}
	}
	return res, nil
}

// HighlightBytes colorizes in-memory content under a virtual file name.
func HighlightBytes(fs *source.FileSet, name string, content []byte, opts Options) (*FileResult, error) {
	id := fs.AddVirtual(name, content)
	mode, err := pickMode(name, opts)
	if err != nil {
		return nil, err
	}
	res := colorizeFile(fs.Get(id), mode)
	res.Path = name
	return res, nil
}

func pickMode(path string, opts Options) (*lang.Mode, error) {
	reg := opts.registry()
	if opts.Mode != "" {
		m, ok := reg.ForName(opts.Mode)
		if !ok {
			return nil, fmt.Errorf("unknown mode %q", opts.Mode)
		}
		return m, nil
	}
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if m, ok := reg.ForExtension(ext); ok {
		return m, nil
	}
	return nil, fmt.Errorf("no mode registered for extension %q", ext)
}

func colorizeFile(f *source.File, mode *lang.Mode) *FileResult {
	cz := colorize.New(mode)
	n := f.LineCount()
	res := &FileResult{
		FileID: f.ID,
		Mode:   mode,
		Lines:  make([]style.SpanSet, 0, n),
		States: make([]colorize.State, 0, n),
	}

	var st colorize.State
	var openedAt uint32
	for lineNum := uint32(1); lineNum <= n; lineNum++ {
		prev := st
		line := []rune(f.GetLine(lineNum))
		var spans style.SpanSet
		spans, st = cz.Line(st, line, nil)
		if openedOnLine(cz, prev, st, line) {
			openedAt = lineNum
		}
		res.Lines = append(res.Lines, spans)
		res.States = append(res.States, st)
	}
	if !st.Idle() {
		res.Unclosed = &Unclosed{Line: openedAt, Construct: st.Open}
	}
	return res
}

// openedOnLine reports whether the construct open at the end of a line
// began on that line. A carried construct continues only when the line
// neither closed it nor swapped it for a new one of the same kind.
func openedOnLine(cz *colorize.Colorizer, prev, st colorize.State, line []rune) bool {
	if st.Idle() {
		return false
	}
	return prev.Idle() || st.Open != prev.Open || cz.ResumeClosed(prev, line)
}

// Rescan recolors a file from the given 1-based line, reusing the
// states recorded in res for the lines before it. This is the edit
// path: everything before start is trusted, everything after is
// recomputed in one forward pass.
func Rescan(res *FileResult, f *source.File, start uint32) {
	if start < 1 {
		start = 1
	}
	if max := uint32(len(res.States)) + 1; start > max {
		start = max
	}
	cz := colorize.New(res.Mode)
	var st colorize.State
	if start > 1 {
		st = res.States[start-2]
	}
	n := f.LineCount()
	res.Lines = res.Lines[:start-1]
	res.States = res.States[:start-1]

	var openedAt uint32
	if !st.Idle() {
		openedAt = openRunStart(cz, f, res.States)
	}
	for lineNum := start; lineNum <= n; lineNum++ {
		prev := st
		line := []rune(f.GetLine(lineNum))
		var spans style.SpanSet
		spans, st = cz.Line(st, line, nil)
		if openedOnLine(cz, prev, st, line) {
			openedAt = lineNum
		}
		res.Lines = append(res.Lines, spans)
		res.States = append(res.States, st)
	}
	res.Unclosed = nil
	if !st.Idle() {
		res.Unclosed = &Unclosed{Line: openedAt, Construct: st.Open}
	}
}

// openRunStart returns the 1-based line on which the currently open
// construct began, given the trusted per-line states up to the resume
// point. Lines are re-read so a close-and-reopen of the same kind
// inside the run is attributed to the reopening line.
func openRunStart(cz *colorize.Colorizer, f *source.File, states []colorize.State) uint32 {
	cur := states[len(states)-1].Open
	i := len(states) - 1
	for i >= 0 && states[i].Open == cur {
		var prev colorize.State
		if i > 0 {
			prev = states[i-1]
		}
		if openedOnLine(cz, prev, states[i], []rune(f.GetLine(uint32(i+1)))) {
			return uint32(i + 1)
		}
		i--
	}
	return uint32(i + 2)
}
