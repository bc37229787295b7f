package commands

import (
	"fmt"

	validation "github.com/jellydator/validation"

	customValidation "github.com/allisson/utilkit/internal/validation"
	"github.com/allisson/utilkit/pkg/version"
)

// RunCompareVersions compares two dotted versions and prints -1, 0 or 1 followed by the
// relation, e.g. "-1 (1.2 < 1.10)".
func RunCompareVersions(x, y string, io IOTuple) error {
	for _, v := range []string{x, y} {
		if err := validation.Validate(v, validation.Required, customValidation.Version); err != nil {
			return customValidation.WrapValidationError(fmt.Errorf("version %q: %w", v, err))
		}
	}

	result := version.Compare(x, y)
	relation := "="
	switch {
	case result < 0:
		result, relation = -1, "<"
	case result > 0:
		result, relation = 1, ">"
	}

	_, _ = fmt.Fprintf(io.Writer, "%d (%s %s %s)\n", result, x, relation, y)
	return nil
}
