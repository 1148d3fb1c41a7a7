package serverutils

import (
	"errors"
	"fmt"
	"strings"

	"kiosk-assistant-be/pkg/errs"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateRequest runs struct tag validation and returns an *errs.ValidationError naming the failed fields.
func ValidateRequest(req interface{}) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %v", errs.ErrValidation, err)
	}

	missing := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		missing = append(missing, strings.ToLower(fe.Field()[:1])+fe.Field()[1:])
	}
	return &errs.ValidationError{Missing: missing}
}
