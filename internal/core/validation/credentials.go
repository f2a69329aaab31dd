// Package validation checks raw signup and login input before it reaches the
// domain. Failures carry fixed, field-specific messages; validator tag names
// and parameters never reach the caller.
package validation

import (
	"errors"
	"strconv"
	"unicode/utf16"

	"github.com/go-playground/validator/v10"

	"github.com/99minutos/members-auth/internal/core/domain"
)

const (
	FieldUsername = "username"
	FieldEmail    = "email"
	FieldPassword = "password"
)

var messages = map[string]string{
	FieldUsername: "Username is required.",
	FieldEmail:    "Email is required.",
	FieldPassword: "Password is required.",
}

// fieldOrder keeps reported errors stable regardless of validator traversal.
var fieldOrder = []string{FieldUsername, FieldEmail, FieldPassword}

type signupSchema struct {
	Username string `validate:"required,alphanum,max=20"`
	Email    string `validate:"required,email"`
	Password string `validate:"required,max_utf16=20"`
}

// Validator is safe for concurrent use.
type Validator struct {
	v *validator.Validate
}

func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.RegisterValidation("max_utf16", maxUTF16); err != nil {
		panic(err)
	}
	return &Validator{v: v}
}

// maxUTF16 bounds a string by UTF-16 code units. Each unit costs at most
// three bytes of UTF-8, so 20 units stay within bcrypt's 72-byte input.
func maxUTF16(fl validator.FieldLevel) bool {
	limit, err := strconv.Atoi(fl.Param())
	if err != nil {
		return false
	}
	return len(utf16.Encode([]rune(fl.Field().String()))) <= limit
}

// ValidateSignup checks all three fields and reports every failure at once.
func (cv *Validator) ValidateSignup(username, email, password string) error {
	err := cv.v.Struct(signupSchema{Username: username, Email: email, Password: password})
	if err == nil {
		return nil
	}

	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return err
	}

	failed := make(map[string]bool, len(ve))
	for _, fe := range ve {
		failed[fieldName(fe.StructField())] = true
	}
	return buildError(failed)
}

// ValidateLoginEmail checks only the email format; login passwords are not
// validated beyond what bcrypt comparison does.
func (cv *Validator) ValidateLoginEmail(email string) error {
	if err := cv.v.Var(email, "required,email"); err != nil {
		return buildError(map[string]bool{FieldEmail: true})
	}
	return nil
}

func buildError(failed map[string]bool) error {
	out := &domain.ValidationError{}
	for _, field := range fieldOrder {
		if failed[field] {
			out.Fields = append(out.Fields, domain.FieldError{Field: field, Message: messages[field]})
		}
	}
	return out
}

func fieldName(structField string) string {
	switch structField {
	case "Username":
		return FieldUsername
	case "Email":
		return FieldEmail
	default:
		return FieldPassword
	}
}
