// Command omex inspects and edits COMBINE Archives (OMEX files).
package main

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var logger = log.NewWithOptions(os.Stderr, log.Options{
	ReportTimestamp: false,
	Prefix:          "omex",
})

func main() {
	root := &cobra.Command{
		Use:           "omex",
		Short:         "Inspect and edit COMBINE Archives (OMEX files)",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(
		newListCmd(),
		newExtractCmd(),
		newAddCmd(),
		newRemoveCmd(),
		newMasterCmd(),
	)

	if err := root.Execute(); err != nil {
		logger.Fatal(err)
	}
}
