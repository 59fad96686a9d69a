package apperrors

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation"
)

// FromValidation converts the result of validation.ValidateStruct into a *ValidationError
// carrying every failing field. Internal validator errors are returned unchanged.
func FromValidation(err error) error {
	if err == nil {
		return nil
	}
	var fieldErrs validation.Errors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	fields := make(map[string]string, len(fieldErrs))
	for name, fe := range fieldErrs {
		if fe == nil {
			continue
		}
		fields[name] = fe.Error()
	}
	if len(fields) == 0 {
		return nil
	}
	return NewValidationError(fields)
}
