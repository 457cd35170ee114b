package core

import (
	"errors"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their JSON names so API clients can map errors to inputs.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})

	_ = v.RegisterValidation("isodate", func(fl validator.FieldLevel) bool {
		return isDate(fl.Field().String(), "2006-01-02")
	})
	_ = v.RegisterValidation("yearmonth", func(fl validator.FieldLevel) bool {
		return isDate(fl.Field().String(), "2006-01")
	})
	return v
}

func isDate(s, layout string) bool {
	_, err := time.Parse(layout, s)
	return err == nil
}

// validateStruct runs the struct tags of s and collects failures into a ValidationError.
func validateStruct(entity string, s any) *ValidationError {
	ve := &ValidationError{Entity: entity}
	err := validate.Struct(s)
	if err == nil {
		return ve
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		ve.Add("", "invalid", err.Error())
		return ve
	}
	for _, fe := range fieldErrs {
		ve.Add(fieldPath(fe.Namespace()), fe.Tag(), fieldMessage(fe))
	}
	return ve
}

// fieldPath drops the root struct name: "DocumentInput.items[0].quantity" → "items[0].quantity".
func fieldPath(namespace string) string {
	if i := strings.IndexByte(namespace, '.'); i >= 0 {
		return namespace[i+1:]
	}
	return namespace
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "numeric":
		return "must contain only digits"
	case "gt":
		return "must be greater than " + fe.Param()
	case "gte":
		return "must be at least " + fe.Param()
	case "isodate":
		return "must be a date formatted YYYY-MM-DD"
	case "yearmonth":
		return "must be a month formatted YYYY-MM"
	}
	return "failed the " + fe.Tag() + " rule"
}
