package errhandler

import (
	"errors"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/pterm/pterm"
)

// HandleError maps a prompt the user backed out of to a clean exit. Any
// other error is returned unchanged for the command runner to propagate.
func HandleError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, huh.ErrUserAborted) || strings.Contains(err.Error(), "interrupt") {
		pterm.Warning.Println("Operation Cancelled")
		os.Exit(0)
	}

	return err
}
