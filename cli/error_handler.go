package cli

import (
	"fmt"
	"os"

	"github.com/sprouttools/sprout/errors"
)

// ErrorHandler provides user-friendly error messages
type ErrorHandler struct {
	Verbose bool
}

// NewErrorHandler creates a new error handler
func NewErrorHandler(verbose bool) *ErrorHandler {
	return &ErrorHandler{
		Verbose: verbose,
	}
}

// Handle provides user-friendly error messages based on error type
func (h *ErrorHandler) Handle(err error) error {
	switch errors.GetCode(err) {
	case errors.ErrCodeTemplateRequired:
		fmt.Fprintf(os.Stderr, "❌ A template name is required.\n")
		fmt.Fprintf(os.Stderr, "Pass one with --template, for example: --template typescript\n")
		return err

	case errors.ErrCodeTemplateNotFound:
		if sproutErr, ok := err.(*errors.SproutError); ok {
			fmt.Fprintf(os.Stderr, "❌ Template not found at %s\n", sproutErr.Details["path"])
			fmt.Fprintf(os.Stderr, "Make sure the template package is installed in the app directory.\n")
		}
		return err

	case errors.ErrCodeManifestNotFound:
		fmt.Fprintf(os.Stderr, "❌ No package.json found in the target directory.\n")
		fmt.Fprintf(os.Stderr, "Run this command against a freshly scaffolded app directory.\n")
		return err

	case errors.ErrCodeInstallFailed:
		if sproutErr, ok := err.(*errors.SproutError); ok {
			fmt.Fprintf(os.Stderr, "❌ %s failed to install dependencies\n", sproutErr.Details["manager"])
			fmt.Fprintf(os.Stderr, "Check the package manager output above for details.\n")
		}
		return err

	case errors.ErrCodeConfigNotFound:
		fmt.Fprintf(os.Stderr, "❌ Configuration not found. Create a sprout.yml to configure sprout.\n")
		return err

	case errors.ErrCodeCommandNotFound:
		fmt.Fprintf(os.Stderr, "❌ Required command not found. Make sure npm or yarn is installed.\n")
		return err

	default:
		fmt.Fprintf(os.Stderr, "❌ Error: %v\n", err)

		if h.Verbose {
			if sproutErr, ok := err.(*errors.SproutError); ok {
				fmt.Fprintf(os.Stderr, "\nError details:\n%s\n", sproutErr.ToJSON())
			}
		}
		return err
	}
}
