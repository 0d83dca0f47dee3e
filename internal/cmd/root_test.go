package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRootCmd_Execute(t *testing.T) {
	t.Run("root command shows help", func(t *testing.T) {
		output, err := executeCmd(t)
		assert.NoError(t, err)
		assert.Contains(t, output, "flatmerge")
	})

	t.Run("help flag", func(t *testing.T) {
		output, err := executeCmd(t, "--help")
		assert.NoError(t, err)
		assert.Contains(t, output, "MANIFEST COMMANDS")
		assert.Contains(t, output, "cargo-sources.json")
	})

	t.Run("version flag", func(t *testing.T) {
		output, err := executeCmd(t, "--version")
		assert.NoError(t, err)
		assert.Equal(t, "flatmerge version "+version+"\n", output)
	})

	t.Run("unknown command fails with status line", func(t *testing.T) {
		output, err := executeCmd(t, "plunder")
		assert.Error(t, err)
		assert.Contains(t, output, "❌ Error:")
	})
}

func TestRootCmd_Structure(t *testing.T) {
	commandNames := make([]string, 0)
	for _, cmd := range rootCmd.Commands() {
		commandNames = append(commandNames, cmd.Name())
	}

	assert.Contains(t, commandNames, "merge")
	assert.Contains(t, commandNames, "variants")
	assert.Contains(t, commandNames, "check")
}

func TestCompletionCmd(t *testing.T) {
	for _, shell := range []string{"bash", "zsh", "fish", "powershell"} {
		t.Run(shell+" completion", func(t *testing.T) {
			output, err := executeCmd(t, "completion", shell)
			assert.NoError(t, err)
			assert.NotEmpty(t, output)
		})
	}

	t.Run("invalid shell", func(t *testing.T) {
		_, err := executeCmd(t, "completion", "invalid")
		assert.Error(t, err)
	})
}
