package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"tinge/internal/driver"
	"tinge/internal/observ"
	"tinge/internal/render"
	"tinge/internal/source"
	"tinge/internal/ui"
)

var highlightCmd = &cobra.Command{
	Use:   "highlight [flags] path",
	Short: "Colorize a source file or directory",
	Long:  `Highlight renders colorized source to stdout. A directory argument colorizes every recognized file under it.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runHighlight,
}

func init() {
	highlightCmd.Flags().Bool("gutter", false, "show line numbers")
	highlightCmd.Flags().String("encoding", "utf8", "input encoding (utf8|latin1)")
	highlightCmd.Flags().String("mode", "", "force a language mode by name")
	highlightCmd.Flags().Bool("progress", false, "show per-file progress for directories")
	highlightCmd.Flags().Bool("cache", false, "record state checkpoints for fast re-highlighting")
}

func runHighlight(cmd *cobra.Command, args []string) error {
	path := args[0]

	manifest, _, err := loadProjectManifest(".")
	if err != nil {
		return err
	}
	theme, err := themeFor(manifest)
	if err != nil {
		return err
	}

	opts, err := driverOptions(cmd, manifest)
	if err != nil {
		return err
	}

	gutter, _ := cmd.Flags().GetBool("gutter")
	renderOpts := render.Options{
		Theme:  theme,
		Color:  useColor(cmd, os.Stdout),
		Gutter: gutter,
	}

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", path, err)
	}

	timer := observ.NewTimer()
	defer func() {
		if timings, _ := cmd.Root().PersistentFlags().GetBool("timings"); timings {
			fmt.Fprint(os.Stderr, timer.Summary())
		}
	}()

	if info.IsDir() {
		phase := timer.Begin("highlight dir")
		err := highlightDir(cmd, path, opts, renderOpts)
		timer.End(phase, path)
		return err
	}

	phase := timer.Begin("colorize")
	fileSet := source.NewFileSet()
	res, err := driver.HighlightFile(fileSet, path, opts)
	timer.End(phase, path)
	if err != nil {
		return err
	}

	phase = timer.Begin("render")
	err = render.WriteFile(os.Stdout, fileSet.Get(res.FileID), res, renderOpts)
	timer.End(phase, "")
	return err
}

func driverOptions(cmd *cobra.Command, manifest *projectManifest) (driver.Options, error) {
	encoding, err := cmd.Flags().GetString("encoding")
	if err != nil {
		return driver.Options{}, fmt.Errorf("failed to get encoding flag: %w", err)
	}
	switch source.Encoding(encoding) {
	case source.EncodingUTF8, source.EncodingLatin1:
	default:
		return driver.Options{}, fmt.Errorf("unknown encoding %q (must be utf8 or latin1)", encoding)
	}
	mode, _ := cmd.Flags().GetString("mode")

	opts := driver.Options{
		Registry: registryFor(manifest),
		Mode:     mode,
		Encoding: source.Encoding(encoding),
	}

	if withCache, _ := cmd.Flags().GetBool("cache"); withCache {
		cache, err := driver.OpenStateCache("tinge")
		if err != nil {
			return driver.Options{}, fmt.Errorf("failed to open state cache: %w", err)
		}
		opts.Cache = cache
	}
	return opts, nil
}

func highlightDir(cmd *cobra.Command, dir string, opts driver.Options, renderOpts render.Options) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	progress, _ := cmd.Flags().GetBool("progress")
	var results []*driver.FileResult
	var err error
	if progress && isTerminal(os.Stdout) {
		results, err = highlightDirWithUI(ctx, dir, opts)
	} else {
		results, err = driver.HighlightDir(ctx, dir, opts)
	}
	if err != nil {
		return err
	}

	quiet, _ := cmd.Root().PersistentFlags().GetBool("quiet")
	for _, res := range results {
		if !quiet {
			fmt.Printf("== %s ==\n", res.Path)
		}
		// each worker owned its FileSet, so reload the text for rendering
		fileSet := source.NewFileSet()
		id, err := fileSet.Load(filepath.Join(dir, res.Path), opts.Encoding)
		if err != nil {
			return err
		}
		if err := render.WriteFile(os.Stdout, fileSet.Get(id), res, renderOpts); err != nil {
			return err
		}
	}
	return nil
}

type dirOutcome struct {
	results []*driver.FileResult
	err     error
}

func highlightDirWithUI(ctx context.Context, dir string, opts driver.Options) ([]*driver.FileResult, error) {
	files, err := driver.ListSourceFiles(dir, opts)
	if err != nil {
		return nil, err
	}
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan dirOutcome, 1)

	go func() {
		optsCopy := opts
		optsCopy.Events = events
		results, err := driver.HighlightDir(ctx, dir, optsCopy)
		outcomeCh <- dirOutcome{results: results, err: err}
		close(events)
	}()

	model := ui.NewProgressModel("highlighting "+dir, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stderr))
	_, uiErr := program.Run()
	outcome := waitForOutcome(events, outcomeCh)
	if uiErr != nil {
		return outcome.results, uiErr
	}
	return outcome.results, outcome.err
}

// waitForOutcome keeps draining progress events while waiting for the
// highlight goroutine. The UI may quit early (ctrl+c); without a
// receiver the workers would block on the event channel once its
// buffer fills and the outcome would never arrive.
func waitForOutcome(events <-chan driver.Event, outcomeCh <-chan dirOutcome) dirOutcome {
	for {
		select {
		case <-events:
		case outcome := <-outcomeCh:
			for range events {
			}
			return outcome
		}
	}
}
