package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/cameronsjo/flatmerge/internal/manifest"
	"github.com/cameronsjo/flatmerge/internal/revision"
)

// completeVariantNames completes --variant values.
func completeVariantNames(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return filterPrefix(manifest.VariantNames(), toComplete), cobra.ShellCompDirectiveNoFileComp
}

// completeResolverKinds completes --resolver values.
func completeResolverKinds(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return filterPrefix([]string{revision.KindShell, revision.KindGoGit}, toComplete), cobra.ShellCompDirectiveNoFileComp
}

// completeJSONFiles limits file completion to JSON files.
func completeJSONFiles(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return []string{"json"}, cobra.ShellCompDirectiveFilterFileExt
}

func filterPrefix(candidates []string, prefix string) []string {
	var names []string
	for _, c := range candidates {
		if strings.HasPrefix(c, prefix) {
			names = append(names, c)
		}
	}
	return names
}

// registerCompletions registers dynamic completions once all commands and
// flags are defined.
func registerCompletions() {
	checkCmd.ValidArgsFunction = completeJSONFiles

	// Registering twice fails; completions are optional so errors are ignored
	_ = mergeCmd.RegisterFlagCompletionFunc("variant", completeVariantNames)
	_ = mergeCmd.RegisterFlagCompletionFunc("resolver", completeResolverKinds)
	_ = mergeCmd.RegisterFlagCompletionFunc("sources", completeJSONFiles)
}

func init() {
	cobra.OnInitialize(registerCompletions)
}
