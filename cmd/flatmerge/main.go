package main

import "github.com/cameronsjo/flatmerge/internal/cmd"

func main() {
	cmd.Execute()
}
