package cmd

import (
	"github.com/spf13/cobra"

	"github.com/cameronsjo/flatmerge/internal/manifest"
	"github.com/cameronsjo/flatmerge/internal/ui"
)

// variantsCmd represents the variants command.
var variantsCmd = &cobra.Command{
	Use:   "variants",
	Short: "List available manifest templates",
	Args:  cobra.NoArgs,
	Run:   runVariants,
}

func init() {
	rootCmd.AddCommand(variantsCmd)
}

func runVariants(cmd *cobra.Command, args []string) {
	ui.Header("Manifest variants:")
	for _, v := range manifest.Variants() {
		pin := ""
		if v.NeedsRevision {
			pin = " [pins commit]"
		}
		ui.Plain("  %-10s %s%s", v.Name, v.Description, pin)
	}
}
