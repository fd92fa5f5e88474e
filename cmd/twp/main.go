package main

import (
	"os"

	"github.com/aki/twp/internal/cli/commands"
)

func main() {
	err := commands.Execute()
	os.Exit(commands.ExitCode(err))
}
