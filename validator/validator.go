package validator

import (
	"reflect"
	"sync"

	"github.com/NethermindEth/expectations/core"
	"github.com/NethermindEth/expectations/hex"
	"github.com/NethermindEth/expectations/report"
	"github.com/NethermindEth/expectations/utils"
	"github.com/go-playground/validator/v10"
)

var (
	once sync.Once
	v    *validator.Validate
)

// Custom validation function for hex literals
func validateHexLiteral(fl validator.FieldLevel) bool {
	s, ok := fl.Field().Interface().(string)
	return ok && hex.IsValidLiteral(s)
}

func validateDecimalLiteral(fl validator.FieldLevel) bool {
	s, ok := fl.Field().Interface().(string)
	return ok && core.IsValidDecimal(s)
}

// Validator returns a singleton that can be used to validate various objects
func Validator() *validator.Validate {
	once.Do(func() {
		v = validator.New()

		if err := v.RegisterValidation("hex_literal", validateHexLiteral); err != nil {
			panic("failed to register validation: " + err.Error())
		}
		if err := v.RegisterValidation("decimal_literal", validateDecimalLiteral); err != nil {
			panic("failed to register validation: " + err.Error())
		}

		// Register these types to use their string representation for validation
		// purposes. Out of range values map to "" so that oneof rejects them
		// instead of panicking.
		v.RegisterCustomTypeFunc(func(field reflect.Value) any {
			if c, ok := field.Interface().(hex.Case); ok && c >= hex.Lower && c <= hex.Mixed {
				return c.String()
			}
			return ""
		}, hex.Case(0))
		v.RegisterCustomTypeFunc(func(field reflect.Value) any {
			if p, ok := field.Interface().(hex.Prefix); ok && p >= hex.WithPrefix && p <= hex.NoPrefix {
				return p.String()
			}
			return ""
		}, hex.Prefix(0))
		v.RegisterCustomTypeFunc(func(field reflect.Value) any {
			if f, ok := field.Interface().(report.Format); ok && f >= report.JSON && f <= report.Table {
				return f.String()
			}
			return ""
		}, report.Format(0))
		v.RegisterCustomTypeFunc(func(field reflect.Value) any {
			if l, ok := field.Interface().(utils.LogLevel); ok && l >= utils.DEBUG && l <= utils.ERROR {
				return l.String()
			}
			return ""
		}, utils.LogLevel(0))
	})
	return v
}
