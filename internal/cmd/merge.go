package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/cameronsjo/flatmerge/internal/config"
	"github.com/cameronsjo/flatmerge/internal/manifest"
	"github.com/cameronsjo/flatmerge/internal/revision"
	"github.com/cameronsjo/flatmerge/internal/ui"
)

var (
	mergeVariant  string
	mergeSources  string
	mergeOutput   string
	mergeCommit   string
	mergeResolver string
	mergeRepoDir  string
	mergeDryRun   bool
)

// mergeCmd represents the merge command.
var mergeCmd = &cobra.Command{
	Use:   "merge",
	Short: "Merge cargo sources into the flatpak manifest",
	Long: `Merge the sources generated by flatpak-cargo-generator into a flatpak manifest.

The manifest template comes from the selected variant. Every entry of the
sources file is appended, in order, after the template's own sources of the
first module. Nothing is deduplicated or reordered. The output file is
replaced on every run.

The flathub variant pins the upstream git repository to the commit checked out
in the repository directory. If the commit cannot be resolved, nothing is read
or written.

Examples:
  # Local build from the working tree
  flatmerge merge

  # Flathub manifest pinned to HEAD
  flatmerge merge -v flathub

  # Flathub manifest pinned to a specific commit, printed to stdout
  flatmerge merge -v flathub --commit 3f2a9c1 -n`,
	Args: cobra.NoArgs,
	RunE: runMerge,
}

func init() {
	mergeCmd.Flags().StringVarP(&mergeVariant, "variant", "v", "", "manifest template (local, flathub)")
	mergeCmd.Flags().StringVarP(&mergeSources, "sources", "s", "", "cargo sources file (default cargo-sources.json)")
	mergeCmd.Flags().StringVarP(&mergeOutput, "output", "o", "", "output path template (default {{ .AppID }}.json)")
	mergeCmd.Flags().StringVar(&mergeCommit, "commit", "", "commit to pin instead of resolving HEAD")
	mergeCmd.Flags().StringVar(&mergeResolver, "resolver", "", "how HEAD is resolved (shell, go-git)")
	mergeCmd.Flags().StringVar(&mergeRepoDir, "repo-dir", "", "repository whose HEAD is pinned (default: config directory)")
	mergeCmd.Flags().BoolVarP(&mergeDryRun, "dry-run", "n", false, "print the merged manifest instead of writing it")

	rootCmd.AddCommand(mergeCmd)
}

// outputData is the data available to the output path template.
type outputData struct {
	AppID    string
	Variant  string
	Revision string
}

func runMerge(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	variant, err := manifest.LookupVariant(cfg.Variant)
	if err != nil {
		return err
	}

	params := manifest.Params{
		AppID:      cfg.AppID,
		Command:    cfg.Command,
		RepoURL:    cfg.RepoURL,
		FinishArgs: cfg.FinishArgs,
	}

	if variant.NeedsRevision {
		rev, err := resolveRevision(ctx, cmd, cfg)
		if err != nil {
			ui.Failed("Failed to get git commit hash. Are you in a git repo?")
			return fmt.Errorf("resolve revision: %w", err)
		}
		ui.Pin("Using commit: %s", rev)
		params.Revision = rev
	}

	tmpl, err := variant.Build(params)
	if err != nil {
		return err
	}

	sourcesPath := cfg.SourcesPath()
	if cmd.Flags().Changed("sources") {
		sourcesPath = mergeSources
	}

	data := outputData{AppID: tmpl.AppID, Variant: variant.Name, Revision: params.Revision}
	var outputPath string
	if cmd.Flags().Changed("output") {
		outputPath, err = config.RenderOutput(mergeOutput, data)
	} else {
		outputPath, err = cfg.OutputPath(data)
	}
	if err != nil {
		return err
	}

	ui.Merging("Merging %s into %s...", filepath.Base(sourcesPath), filepath.Base(outputPath))

	if mergeDryRun {
		result, err := manifest.MergeSourcesFile(tmpl, sourcesPath)
		if err != nil {
			return err
		}
		encoded, err := manifest.Encode(result.Manifest)
		if err != nil {
			return err
		}
		if _, err := cmd.OutOrStdout().Write(encoded); err != nil {
			return fmt.Errorf("write manifest: %w", err)
		}
		ui.Info("Dry run: %s not written (%d sources appended)", outputPath, result.Appended)
		return nil
	}

	result, err := manifest.MergeFile(tmpl, sourcesPath, outputPath)
	if err != nil {
		return err
	}

	if result.Appended == 0 {
		ui.Warning("%s is empty, no cargo sources appended", filepath.Base(sourcesPath))
	}
	ui.Created("Created %s (Full Manifest)", filepath.Base(result.OutputPath))
	ui.Info("  %d template + %d cargo sources", result.Total-result.Appended, result.Appended)
	return nil
}

// loadConfig loads the config file and applies env and flag overrides.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, err
	}
	cfg.ApplyEnv(os.Getenv)

	flags := cmd.Flags()
	if flags.Changed("variant") {
		cfg.Variant = mergeVariant
	}
	if flags.Changed("resolver") {
		cfg.Resolver = mergeResolver
	}
	return cfg, nil
}

// resolveRevision returns the --commit override or the HEAD of the repository.
func resolveRevision(ctx context.Context, cmd *cobra.Command, cfg *config.Config) (string, error) {
	if cmd.Flags().Changed("commit") {
		return revision.Static(mergeCommit).Resolve(ctx)
	}

	dir := cfg.RepositoryDir()
	if cmd.Flags().Changed("repo-dir") {
		dir = mergeRepoDir
	}

	resolver, err := revision.New(cfg.Resolver, dir)
	if err != nil {
		return "", err
	}
	return resolver.Resolve(ctx)
}
