// Package validation registers the desk's custom binding tags on gin's
// validator.
package validation

import (
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// StringCheck reports whether a field value is acceptable.
type StringCheck func(string) bool

var registerOnce sync.Once

// RegisterGinValidators installs json field naming and the given string tags on
// gin's default validator. Safe to call more than once; only the first call
// takes effect.
func RegisterGinValidators(tags map[string]StringCheck) error {
	var err error
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			err = fmt.Errorf("unexpected gin validator engine %T", binding.Validator.Engine())
			return
		}
		err = Register(v, tags)
	})
	return err
}

// Register adds notblank, json tag naming and every custom string tag to v.
func Register(v *validator.Validate, tags map[string]StringCheck) error {
	v.RegisterTagNameFunc(jsonFieldName)

	if err := v.RegisterValidation("notblank", notBlank); err != nil {
		return fmt.Errorf("register notblank: %w", err)
	}
	for tag, check := range tags {
		check := check
		err := v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
			if fl.Field().Kind() != reflect.String {
				return false
			}
			s := fl.Field().String()
			// empty values are left to required/omitempty
			return s == "" || check(s)
		})
		if err != nil {
			return fmt.Errorf("register %s: %w", tag, err)
		}
	}
	return nil
}

func notBlank(fl validator.FieldLevel) bool {
	if fl.Field().Kind() != reflect.String {
		return false
	}
	return strings.TrimSpace(fl.Field().String()) != ""
}

func jsonFieldName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return fld.Name
	}
	return name
}
