// Package validate holds the input checks shared by the services.
//
// Checks are evaluated in order and only the first violation is reported,
// which keeps the messages shown to users short and deterministic.
package validate

import (
	"net/http"
	"net/url"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

type (
	InvalidField struct {
		Field   string
		Message string
	}

	Check func() error
)

const (
	emailTag = "required,email,max=254,tld"
)

var (
	fields = newValidator()
)

func newValidator() *validator.Validate {
	v := validator.New()
	// the email tag accepts single letter and numeric top level domains
	err := v.RegisterValidation("tld", func(fl validator.FieldLevel) bool {
		return hasTLD(fl.Field().String())
	})
	if err != nil {
		panic(err)
	}
	return v
}

func hasTLD(email string) bool {
	domain := email[strings.LastIndexByte(email, '@')+1:]
	tld := domain[strings.LastIndexByte(domain, '.')+1:]
	if len(tld) < 2 || len(tld) == len(domain) {
		return false
	}
	for _, r := range tld {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

func (i InvalidField) Error() string       { return i.Field + ": " + i.Message }
func (i InvalidField) UserMessage() string { return i.Message }
func (i InvalidField) HTTPStatus() int     { return http.StatusBadRequest }

// First runs every check until one of them fails
func First(checks ...Check) error {
	for _, c := range checks {
		if err := c(); err != nil {
			return err
		}
	}
	return nil
}

func Email(field, value, msg string) Check {
	return func() error {
		if fields.Var(value, emailTag) != nil {
			return InvalidField{Field: field, Message: msg}
		}
		return nil
	}
}

// MinLength counts runes, not bytes
func MinLength(field, value string, min int, msg string) Check {
	return func() error {
		if utf8.RuneCountInString(value) < min {
			return InvalidField{Field: field, Message: msg}
		}
		return nil
	}
}

func Required(field, value, msg string) Check {
	return func() error {
		if len(strings.TrimSpace(value)) == 0 {
			return InvalidField{Field: field, Message: msg}
		}
		return nil
	}
}

// OptionalHTTPURL accepts empty values, anything else must be an absolute
// http(s) url.
func OptionalHTTPURL(field, value, msg string) Check {
	return func() error {
		if len(value) == 0 {
			return nil
		}
		u, err := url.Parse(value)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || len(u.Host) == 0 {
			return InvalidField{Field: field, Message: msg}
		}
		return nil
	}
}
