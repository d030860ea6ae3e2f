package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"tinge/internal/driver"
	"tinge/internal/source"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] path",
	Short: "Report constructs left open at end of file",
	Long:  `Check scans a file or directory and fails when a comment, string, or pragmat never closes`,
	Args:  cobra.ExactArgs(1),
	RunE:  runCheck,
}

func init() {
	checkCmd.Flags().String("encoding", "utf8", "input encoding (utf8|latin1)")
	checkCmd.Flags().String("mode", "", "force a language mode by name")
	checkCmd.Flags().Bool("cache", false, "record state checkpoints for fast re-highlighting")
}

func runCheck(cmd *cobra.Command, args []string) error {
	path := args[0]

	manifest, _, err := loadProjectManifest(".")
	if err != nil {
		return err
	}
	opts, err := driverOptions(cmd, manifest)
	if err != nil {
		return err
	}

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", path, err)
	}

	var results []*driver.FileResult
	if info.IsDir() {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		results, err = driver.HighlightDir(ctx, path, opts)
	} else {
		var res *driver.FileResult
		res, err = driver.HighlightFile(source.NewFileSet(), path, opts)
		results = append(results, res)
	}
	if err != nil {
		return err
	}

	quiet, _ := cmd.Root().PersistentFlags().GetBool("quiet")
	var open int
	for _, res := range results {
		if res.Unclosed == nil {
			continue
		}
		open++
		fmt.Fprintf(os.Stderr, "%s:%d: unclosed %s\n",
			res.Path, res.Unclosed.Line, res.Unclosed.Construct)
	}
	if open > 0 {
		return fmt.Errorf("%d file(s) with unclosed constructs", open)
	}
	if !quiet {
		fmt.Println("all constructs closed")
	}
	return nil
}
