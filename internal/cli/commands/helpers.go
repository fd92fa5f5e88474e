package commands

import (
	"errors"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/aki/twp/internal/app"
	"github.com/aki/twp/internal/core/save"
)

// Exit codes returned by the twp binary
const (
	ExitOK            = 0
	ExitError         = 1
	ExitAborted       = 2
	ExitPublishFailed = 3
)

// stdin is where operator answers are read from
var stdin io.Reader = os.Stdin

// containerOptions converts the global flags into container options
func containerOptions() app.Options {
	return app.Options{
		Dir:        flagDir,
		ConfigPath: flagConfig,
		LogLevel:   flagLogLevel,
		LogFormat:  flagLogFormat,
	}
}

// createContainer opens the repository for commands that need one
func createContainer(cmd *cobra.Command) (*app.Container, error) {
	return app.NewContainer(cmd.Context(), containerOptions())
}

// createContainerWithoutRepo is for commands that work outside a working tree
func createContainerWithoutRepo(cmd *cobra.Command) (*app.Container, error) {
	return app.NewContainerWithoutRepo(cmd.Context(), containerOptions())
}

// ExitCode maps a command error to the process exit status
func ExitCode(err error) int {
	var rejected *save.PublishRejectedError
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, save.ErrDeclinedByOperator):
		return ExitAborted
	case errors.As(err, &rejected):
		return ExitPublishFailed
	default:
		return ExitError
	}
}
