package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cameronsjo/flatmerge/internal/manifest"
	"github.com/cameronsjo/flatmerge/internal/ui"
)

// checkCmd represents the check command.
var checkCmd = &cobra.Command{
	Use:   "check [file]",
	Short: "Check a manifest against the flatpak manifest schema",
	Long: `Check a generated manifest for missing required fields and malformed sources.

Without an argument, checks the manifest the merge command would write with
the current configuration.

Examples:
  flatmerge check
  flatmerge check io.github.szymonwilczek.carmenta.json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	var path string
	if len(args) == 1 {
		path = args[0]
	} else {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		appID := cfg.AppID
		if appID == "" {
			appID = manifest.DefaultAppID
		}
		path, err = cfg.OutputPath(outputData{AppID: appID, Variant: cfg.Variant})
		if err != nil {
			return err
		}
	}

	result, err := manifest.ValidateFile(path)
	if err != nil {
		return err
	}

	if result.Valid {
		ui.Success("%s is a valid manifest", path)
		return nil
	}

	for _, issue := range result.Issues {
		location := issue.Path
		if location == "" {
			location = "/"
		}
		ui.Error("%s: %s", location, issue.Message)
	}
	return fmt.Errorf("%s: %d issue(s) found", path, len(result.Issues))
}
