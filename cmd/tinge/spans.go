package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"tinge/internal/driver"
	"tinge/internal/render"
	"tinge/internal/source"
)

var spansCmd = &cobra.Command{
	Use:   "spans [flags] file",
	Short: "Dump the colored spans of a source file",
	Long:  `Spans prints every colored region of a file with its line, columns, and style kind`,
	Args:  cobra.ExactArgs(1),
	RunE:  runSpans,
}

func init() {
	spansCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	spansCmd.Flags().String("encoding", "utf8", "input encoding (utf8|latin1)")
	spansCmd.Flags().String("mode", "", "force a language mode by name")
	spansCmd.Flags().Bool("cache", false, "record state checkpoints for fast re-highlighting")
}

func runSpans(cmd *cobra.Command, args []string) error {
	filePath := args[0]

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}

	manifest, _, err := loadProjectManifest(".")
	if err != nil {
		return err
	}
	opts, err := driverOptions(cmd, manifest)
	if err != nil {
		return err
	}

	fileSet := source.NewFileSet()
	res, err := driver.HighlightFile(fileSet, filePath, opts)
	if err != nil {
		return err
	}

	switch format {
	case "pretty":
		return render.FormatSpansPretty(os.Stdout, fileSet.Get(res.FileID), res)
	case "json":
		return render.FormatSpansJSON(os.Stdout, fileSet.Get(res.FileID), res)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}
