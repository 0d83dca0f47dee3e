package cmd

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
)

func TestCompleteVariantNames(t *testing.T) {
	tests := []struct {
		name       string
		toComplete string
		want       []string
	}{
		{name: "empty prefix returns all variants", toComplete: "", want: []string{"flathub", "local"}},
		{name: "f prefix returns flathub", toComplete: "f", want: []string{"flathub"}},
		{name: "no match returns empty", toComplete: "xyz", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, directive := completeVariantNames(mergeCmd, nil, tt.toComplete)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, cobra.ShellCompDirectiveNoFileComp, directive)
		})
	}
}

func TestCompleteResolverKinds(t *testing.T) {
	got, directive := completeResolverKinds(mergeCmd, nil, "go")
	assert.Equal(t, []string{"go-git"}, got)
	assert.Equal(t, cobra.ShellCompDirectiveNoFileComp, directive)
}

func TestCompleteJSONFiles(t *testing.T) {
	t.Run("filters by extension", func(t *testing.T) {
		got, directive := completeJSONFiles(checkCmd, nil, "")
		assert.Equal(t, []string{"json"}, got)
		assert.Equal(t, cobra.ShellCompDirectiveFilterFileExt, directive)
	})

	t.Run("already has arg returns nothing", func(t *testing.T) {
		got, directive := completeJSONFiles(checkCmd, []string{"a.json"}, "")
		assert.Nil(t, got)
		assert.Equal(t, cobra.ShellCompDirectiveNoFileComp, directive)
	})
}

func TestDynamicCompletion(t *testing.T) {
	output, err := executeCmd(t, cobra.ShellCompRequestCmd, "merge", "--variant", "l")
	assert.NoError(t, err)
	assert.Contains(t, output, "local")
}
