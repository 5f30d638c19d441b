package validator_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"studyon-billing/internal/pkg/validator"
)

type credentials struct {
	Username string `json:"username" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=100"`
}

func TestStruct_Messages(t *testing.T) {
	assert.Nil(t, validator.Struct(&credentials{Username: "user@gmail.com", Password: "secret"}))

	assert.Equal(t, []string{
		"Поле Email должно быть заполнено",
		"Поле Password должно быть заполнено",
	}, validator.Struct(&credentials{}))

	assert.Equal(t, []string{
		"Неверный Email адрес",
		"Поле Password должно содержать минимум 6 символов",
	}, validator.Struct(&credentials{Username: "not-an-email", Password: "123"}))

	assert.Equal(t, []string{
		"Password должен иметь не более 100 символов",
	}, validator.Struct(&credentials{Username: "user@gmail.com", Password: strings.Repeat("p", 101)}))
}

func TestStruct_FallbackMessage(t *testing.T) {
	type deposit struct {
		Note string `json:"note" validate:"oneof=a b"`
	}
	msgs := validator.Struct(&deposit{Note: "c"})
	assert.Equal(t, []string{"Поле note не прошло проверку oneof=a b"}, msgs)
}
