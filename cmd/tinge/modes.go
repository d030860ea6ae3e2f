package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"tinge/internal/lang"
)

var modesCmd = &cobra.Command{
	Use:   "modes",
	Short: "List registered language modes",
	RunE:  runModes,
}

func runModes(cmd *cobra.Command, args []string) error {
	manifest, _, err := loadProjectManifest(".")
	if err != nil {
		return err
	}
	reg := registryFor(manifest)

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "MODE\tEXTENSIONS\tKEYWORDS\tTYPES")
	for _, m := range reg.Modes() {
		exts := strings.Join(m.Extensions, ",")
		if exts == "" {
			exts = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\n",
			m.Name, exts, lang.WordCount(m.Keywords), lang.WordCount(m.Types))
	}
	return w.Flush()
}
