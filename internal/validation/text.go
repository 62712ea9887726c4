package validation

import (
	"fmt"
	"sync"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

const (
	MsgRequired = "This field is required."
	MsgEmail    = "Enter a valid email address."
)

var (
	tags     *validator.Validate
	tagsOnce sync.Once
)

func tagValidator() *validator.Validate {
	tagsOnce.Do(func() {
		tags = validator.New(validator.WithRequiredStructEnabled())
	})
	return tags
}

// Email checks that value is a syntactically valid email address.
func Email(value string) error {
	if err := tagValidator().Var(value, "required,email"); err != nil {
		return Errorf(KindFormat, MsgEmail)
	}
	return nil
}

// MaxLength checks that value has at most n characters.
func MaxLength(value string, n int) error {
	if err := tagValidator().Var(value, fmt.Sprintf("max=%d", n)); err != nil {
		return Errorf(KindFormat, "Ensure this value has at most %d characters (it has %d).", n, utf8.RuneCountInString(value))
	}
	return nil
}

// MinLength checks that value has at least n characters.
func MinLength(value string, n int) error {
	if err := tagValidator().Var(value, fmt.Sprintf("min=%d", n)); err != nil {
		return Errorf(KindFormat, "Ensure this value has at least %d characters (it has %d).", n, utf8.RuneCountInString(value))
	}
	return nil
}

// OneOf checks that value is one of choices.
func OneOf(value string, choices []string) error {
	for _, c := range choices {
		if value == c {
			return nil
		}
	}
	return Errorf(KindFormat, "Select a valid choice. %s is not one of the available choices.", value)
}
