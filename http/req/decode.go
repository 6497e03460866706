package req

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gorilla/schema"
	"github.com/xy-planning-network/nightshift"
)

// translateDecoderError converts an error returned by *schema.Decoder into standardized errors.
// Some are mistakes in calling code, the rest mismatches between
// a request's query params and the expected shape.
func translateDecoderError(err error) error {
	var pkgErrs schema.MultiError
	if !errors.As(err, &pkgErrs) {
		return fmt.Errorf("%w: %s", nightshift.ErrBadFormat, err)
	}

	var validErrs ValidationErrors
	for _, pkgErr := range pkgErrs {
		switch err := pkgErr.(type) {
		case schema.ConversionError:
			// NOTE: Index is -1 for non-slice values
			validErrs = append(validErrs, ValidationError{
				Field: err.Key,
				Got:   fmt.Sprintf("bad value at index %d", max(0, err.Index)),
				Rule:  "must be " + err.Type.String(),
			})

		case schema.EmptyFieldError:
			return fmt.Errorf(`%w: use "validate" tags to require fields, not "schema"`, nightshift.ErrNotImplemented)

		default:
			if strings.Contains(err.Error(), "schema: converter not found for") {
				return fmt.Errorf("%w: cannot convert values into unsupported type", nightshift.ErrNotImplemented)
			}

			return fmt.Errorf("%w: %s", nightshift.ErrUnexpected, err)
		}
	}

	return validErrs
}
