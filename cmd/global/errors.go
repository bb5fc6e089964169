package global

import (
	"github.com/spf13/cobra"
)

// UsageError marks invalid command line input, which results in exit code 2
type UsageError struct {
	Err error
}

func (e *UsageError) Error() string {
	return e.Err.Error()
}

func (e *UsageError) Unwrap() error {
	return e.Err
}

// UsageArgs wraps an argument validator so that its failures are reported as usage errors
func UsageArgs(validator cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := validator(cmd, args); err != nil {
			return &UsageError{Err: err}
		}
		return nil
	}
}
