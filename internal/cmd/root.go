// Package cmd provides the CLI commands for flatmerge.
package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/cameronsjo/flatmerge/internal/ui"
)

const version = "0.1.0"

// configFile is the --config flag shared by all commands.
var configFile string

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "flatmerge",
	Short: "Assemble flatpak manifests from a template and cargo sources",
	Long: `flatmerge - flatpak manifest assembler

Builds a full flatpak manifest by appending the sources generated by
flatpak-cargo-generator (cargo-sources.json) to a static manifest template.

MANIFEST COMMANDS
  merge                 Merge cargo-sources.json into the manifest
    --variant, -v       Template to use (local, flathub)
    --sources, -s       Cargo sources file (default cargo-sources.json)
    --output, -o        Output path template (default {{ .AppID }}.json)
    --commit            Pin this commit instead of resolving HEAD
    --dry-run, -n       Print the merged manifest without writing
  variants              List available manifest templates
  check [file]          Check a manifest against the flatpak schema

CONFIGURATION
  flatmerge.yaml is searched from the working directory upward.
  FLATMERGE_VARIANT, FLATMERGE_SOURCES and FLATMERGE_OUTPUT override it.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// Execute runs the root command and exits 1 on any failure.
func Execute() {
	if err := execute(); err != nil {
		os.Exit(1)
	}
}

// execute runs the root command and reports a failure as a single status line.
func execute() error {
	out := rootCmd.OutOrStdout()
	ui.SetOutput(out)
	ui.DetectColor(out)

	err := rootCmd.Execute()
	if err != nil {
		ui.Failed("Error: %v", err)
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default: nearest flatmerge.yaml)")

	rootCmd.SetVersionTemplate("flatmerge version {{.Version}}\n")
}
