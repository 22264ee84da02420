package validator

import (
	"reflect"
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/fisiotrack/ward-api/internal/model"
)

// Setup registers domain types and rules with gin's binding validator.
// model.Date is exposed to the engine as its underlying time.Time so that
// required/pastdate work on request structs.
func Setup() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}

	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(model.Date); ok {
			return d.Time
		}
		return nil
	}, model.Date{})

	return v.RegisterValidation("pastdate", pastDate)
}

// pastDate rejects dates after today. Used for birth dates.
func pastDate(fl validator.FieldLevel) bool {
	t, ok := fl.Field().Interface().(time.Time)
	if !ok {
		return false
	}
	return !t.After(time.Now())
}
