package application

import (
	"errors"
	"fmt"
	"io"

	"github.com/eugenenazirov/repo-sync-config/internal/document"
	"github.com/eugenenazirov/repo-sync-config/internal/validator"
)

// Report writes the user facing diagnostic for an error returned by Lookup
// or Dump. path is the document the command was asked to read.
func Report(w io.Writer, path string, err error) error {
	var (
		validationErr *ValidationError
		syntaxErr     *document.SyntaxError
		readErr       *document.ReadError
	)

	switch {
	case errors.As(err, &validationErr):
		return validator.WriteReport(w, validationErr.Result)
	case errors.As(err, &syntaxErr):
		_, werr := fmt.Fprintf(w, "ERROR: Invalid YAML syntax in '%s':\n%s\n", path, syntaxErr.Diagnostic)
		return werr
	case errors.Is(err, document.ErrNotFound):
		_, werr := fmt.Fprintf(w, "ERROR: Configuration file '%s' not found.\n", path)
		return werr
	case errors.As(err, &readErr):
		_, werr := fmt.Fprintf(w, "ERROR: Unable to read configuration file '%s': %v\n", path, readErr.Err)
		return werr
	case errors.Is(err, ErrNotMapping):
		_, werr := fmt.Fprintf(w, "ERROR: Configuration file '%s' does not contain a mapping.\n", path)
		return werr
	default:
		_, werr := fmt.Fprintf(w, "ERROR: %v\n", err)
		return werr
	}
}
