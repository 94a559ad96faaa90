package validations

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// FirstFailure returns the field and a readable message for the first failed
// rule in err. ok is false when err did not come from the validator.
func FirstFailure(err error) (field, message string, ok bool) {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "", "", false
	}
	fe := verrs[0]
	return fe.Field(), describe(fe), true
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of [%s]", fe.Param())
	case "money":
		return fmt.Sprintf("must be a decimal with at most %d digits and %d decimal places", MoneyDigits, MoneyPlaces)
	}
	return fmt.Sprintf("failed on %q", fe.Tag())
}
