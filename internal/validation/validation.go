// Package validation checks user supplied names and configuration structs.
package validation

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// ErrInvalidName is wrapped by every name validation error
var ErrInvalidName = errors.New("invalid name")

// UsernamePattern определяет допустимый формат username
// Только латинские буквы (a-z, A-Z), цифры (0-9), нижнее подчеркивание (_)
var UsernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)

const (
	// MinUsernameLen минимальная длина username
	MinUsernameLen = 3
	// MaxUsernameLen максимальная длина username
	MaxUsernameLen = 32
	// MaxDeckNameLen максимальная длина имени колоды в символах
	MaxDeckNameLen = 256
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	mustRegister(v, "username", func(fl validator.FieldLevel) bool {
		return UsernamePattern.MatchString(fl.Field().String())
	})
	mustRegister(v, "deckname", func(fl validator.FieldLevel) bool {
		return isDeckName(fl.Field().String())
	})
	return v
}

// mustRegister паникует: ошибка регистрации тега - ошибка программиста
func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("validation: register %q: %v", tag, err))
	}
}

// isDeckName: без управляющих символов и без пробелов по краям.
// "::" разрешено, это разделитель вложенных колод.
func isDeckName(name string) bool {
	if strings.TrimSpace(name) != name {
		return false
	}
	for _, r := range name {
		if unicode.IsControl(r) || r == unicode.ReplacementChar {
			return false
		}
	}
	return true
}

// ValidateUsername проверяет, что username соответствует требованиям
// Формат: только латинские буквы (a-z, A-Z), цифры (0-9), нижнее подчеркивание (_)
// Длина: 3-32 символа
func ValidateUsername(username string) error {
	rules := fmt.Sprintf("required,min=%d,max=%d,username", MinUsernameLen, MaxUsernameLen)
	switch failedTag(validate.Var(username, rules)) {
	case "":
		return nil
	case "required":
		return fmt.Errorf("%w: username cannot be empty", ErrInvalidName)
	case "min":
		return fmt.Errorf("%w: username must be at least %d characters long", ErrInvalidName, MinUsernameLen)
	case "max":
		return fmt.Errorf("%w: username must not exceed %d characters", ErrInvalidName, MaxUsernameLen)
	default:
		return fmt.Errorf("%w: username can only contain letters (a-z, A-Z), numbers (0-9), and underscores (_)", ErrInvalidName)
	}
}

// ValidateDeckName проверяет имя колоды
func ValidateDeckName(name string) error {
	rules := fmt.Sprintf("required,max=%d,deckname", MaxDeckNameLen)
	switch failedTag(validate.Var(name, rules)) {
	case "":
		return nil
	case "required":
		return fmt.Errorf("%w: deck name cannot be empty", ErrInvalidName)
	case "max":
		return fmt.Errorf("%w: deck name must not exceed %d characters", ErrInvalidName, MaxDeckNameLen)
	default:
		return fmt.Errorf("%w: deck name must not contain control characters or surrounding spaces", ErrInvalidName)
	}
}

// Struct validates v against its `validate` struct tags.
func Struct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s: failed %q rule", fe.Namespace(), fe.Tag()))
	}
	return fmt.Errorf("validation failed: %s", strings.Join(msgs, "; "))
}

// failedTag returns the tag of the first failed rule, "" when err is nil.
func failedTag(err error) string {
	if err == nil {
		return ""
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return verrs[0].Tag()
	}
	return "invalid"
}
