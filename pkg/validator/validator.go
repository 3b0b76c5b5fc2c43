package validator

import (
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// StringRule validates a single string field, returning a descriptive error.
type StringRule func(value string) error

var (
	rulesMu sync.RWMutex
	rules   = map[string]StringRule{}
	setup   sync.Once
)

// RegisterStringRule exposes rule as a binding tag on gin's validator, so
// `binding:"required,<tag>"` runs it during ShouldBindJSON.
func RegisterStringRule(tag string, rule StringRule) error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected binding engine %T", binding.Validator.Engine())
	}
	setup.Do(func() {
		v.RegisterTagNameFunc(jsonFieldName)
	})

	rulesMu.Lock()
	rules[tag] = rule
	rulesMu.Unlock()

	return v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
		if fl.Field().Kind() != reflect.String {
			return false
		}
		return rule(fl.Field().String()) == nil
	})
}

// ParseError maps binding failures to field → message.
func ParseError(err error) map[string]string {
	errors := make(map[string]string)
	if ve, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range ve {
			errors[fe.Field()] = fieldMessage(fe)
		}
	} else if err != nil { // Non-validator errors
		errors["error"] = err.Error()
	}
	return errors
}

func fieldMessage(fe validator.FieldError) string {
	rulesMu.RLock()
	rule, ok := rules[fe.Tag()]
	rulesMu.RUnlock()
	if ok {
		if s, isString := fe.Value().(string); isString {
			if err := rule(s); err != nil {
				return err.Error()
			}
		}
	}
	return fmt.Sprintf("Field validation for '%s' failed on the '%s' tag", fe.Field(), fe.Tag())
}

func jsonFieldName(field reflect.StructField) string {
	name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return field.Name
	}
	return name
}
