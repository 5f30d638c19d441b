package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidate()

// messages maps "<json field>.<tag>" to a user facing message
var messages = map[string]string{
	"username.required": "Поле Email должно быть заполнено",
	"username.email":    "Неверный Email адрес",
	"password.required": "Поле Password должно быть заполнено",
	"password.min":      "Поле Password должно содержать минимум 6 символов",
	"password.max":      "Password должен иметь не более 100 символов",
	"code.required":     "Поле Code должно быть заполнено",
	"code.max":          "Code должен иметь не более 255 символов",
	"name.max":          "Name должен иметь не более 255 символов",
	"amount.required":   "Поле Amount должно быть заполнено",
}

func newValidate() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	return v
}

// Struct validates s and returns one message per failed rule, or nil
func Struct(s interface{}) []string {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return []string{err.Error()}
	}

	out := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		out = append(out, message(fe.Field(), fe.Tag(), fe.Param()))
	}
	return out
}

func message(field, tag, param string) string {
	if msg, ok := messages[field+"."+tag]; ok {
		return msg
	}
	if param != "" {
		return fmt.Sprintf("Поле %s не прошло проверку %s=%s", field, tag, param)
	}
	return fmt.Sprintf("Поле %s не прошло проверку %s", field, tag)
}
