package validations

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// decimal(10,2): eight integer digits, two fraction digits.
const (
	MoneyDigits = 10
	MoneyPlaces = 2
)

var (
	ErrTooManyPlaces = errors.New("must have at most 2 decimal places")
	ErrTooManyDigits = errors.New("must have at most 10 digits in total")

	moneyLimit = decimal.New(1, MoneyDigits-MoneyPlaces)
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(jsonFieldName)
	v.RegisterCustomTypeFunc(decimalString, decimal.Decimal{})
	if err := v.RegisterValidation("money", validateMoney); err != nil {
		panic(err)
	}
	return v
}

// Struct runs the `validate` tags on s. The error, if any, is a
// validator.ValidationErrors whose field names follow the json tags.
func Struct(s interface{}) error {
	return validate.Struct(s)
}

// CheckMoney reports whether d fits a decimal(10,2) column. The scale is read
// as written, so 100.000 has three places even though it equals 100.
func CheckMoney(d decimal.Decimal) error {
	if d.Exponent() < -MoneyPlaces {
		return ErrTooManyPlaces
	}
	if d.Abs().Truncate(0).GreaterThanOrEqual(moneyLimit) {
		return ErrTooManyDigits
	}
	return nil
}

func validateMoney(fl validator.FieldLevel) bool {
	d, err := decimal.NewFromString(fl.Field().String())
	if err != nil {
		return false
	}
	return CheckMoney(d) == nil
}

// decimalString keeps trailing zeros so the money rule sees the original scale.
func decimalString(v reflect.Value) interface{} {
	d, ok := v.Interface().(decimal.Decimal)
	if !ok {
		return nil
	}
	if exp := d.Exponent(); exp < 0 {
		return d.StringFixed(-exp)
	}
	return d.String()
}

func jsonFieldName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	switch name {
	case "-":
		return ""
	case "":
		return fld.Name
	}
	return name
}
