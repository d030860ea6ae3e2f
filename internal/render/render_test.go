package render_test

import (
	"strings"
	"testing"

	"tinge/internal/driver"
	"tinge/internal/render"
	"tinge/internal/source"
)

func TestWriteFilePlain(t *testing.T) {
	fs := source.NewFileSet()
	res, err := driver.HighlightBytes(fs, "demo.a68", []byte("begin\nskip\nend\n"), driver.Options{})
	if err != nil {
		t.Fatal(err)
	}
	f := fs.Get(res.FileID)

	var sb strings.Builder
	if err := render.WriteFile(&sb, f, res, render.Options{Color: false}); err != nil {
		t.Fatal(err)
	}
	if got, want := sb.String(), "begin\nskip\nend\n"; got != want {
		t.Errorf("plain render = %q, want %q", got, want)
	}
}

func TestWriteFileGutter(t *testing.T) {
	var content []byte
	for i := 0; i < 12; i++ {
		content = append(content, []byte("skip\n")...)
	}
	fs := source.NewFileSet()
	res, err := driver.HighlightBytes(fs, "demo.a68", content, driver.Options{})
	if err != nil {
		t.Fatal(err)
	}

	var sb strings.Builder
	if err := render.WriteFile(&sb, fs.Get(res.FileID), res, render.Options{Gutter: true}); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSuffix(sb.String(), "\n"), "\n")
	if len(lines) != 12 {
		t.Fatalf("got %d lines, want 12", len(lines))
	}
	// two-digit count right-aligns the single digits
	if !strings.HasPrefix(lines[0], " 1  ") {
		t.Errorf("line 1 gutter = %q", lines[0])
	}
	if !strings.HasPrefix(lines[11], "12  ") {
		t.Errorf("line 12 gutter = %q", lines[11])
	}
}

func TestThemeFromColors(t *testing.T) {
	if _, err := render.ThemeFromColors(map[string]string{"keyword": "#a8cc8c"}); err != nil {
		t.Fatalf("valid override rejected: %v", err)
	}
	if _, err := render.ThemeFromColors(map[string]string{"sparkle": "3"}); err == nil {
		t.Fatal("expected an error for an unknown kind")
	}
}
