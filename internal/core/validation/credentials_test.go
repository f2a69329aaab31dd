package validation

import (
	"errors"
	"strings"
	"testing"

	"github.com/99minutos/members-auth/internal/core/domain"
)

func asValidationError(t *testing.T, err error) *domain.ValidationError {
	t.Helper()
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected *domain.ValidationError, got %T (%v)", err, err)
	}
	return ve
}

func TestValidateSignup_Valid(t *testing.T) {
	v := New()
	if err := v.ValidateSignup("alice42", "alice@example.com", "hunter2"); err != nil {
		t.Fatalf("expected valid input, got %v", err)
	}
}

func TestValidateSignup_Username(t *testing.T) {
	v := New()
	cases := []struct {
		name     string
		username string
		valid    bool
	}{
		{"single char", "a", true},
		{"twenty chars", strings.Repeat("a", 20), true},
		{"mixed case and digits", "Bob2024", true},
		{"empty", "", false},
		{"twenty one chars", strings.Repeat("b", 21), false},
		{"space", "bob smith", false},
		{"underscore", "bob_smith", false},
		{"symbol", "bob!", false},
		{"non ascii letter", "josé", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := v.ValidateSignup(tc.username, "user@example.com", "pw")
			if tc.valid {
				if err != nil {
					t.Fatalf("expected %q to pass, got %v", tc.username, err)
				}
				return
			}
			ve := asValidationError(t, err)
			if !ve.Has(FieldUsername) {
				t.Fatalf("expected username error for %q, got %v", tc.username, ve.Fields)
			}
			if ve.Has(FieldEmail) || ve.Has(FieldPassword) {
				t.Fatalf("unexpected extra field errors: %v", ve.Fields)
			}
		})
	}
}

func TestValidateSignup_Password(t *testing.T) {
	v := New()

	if err := v.ValidateSignup("carol", "carol@example.com", strings.Repeat("p", 20)); err != nil {
		t.Fatalf("20 char password should pass: %v", err)
	}
	if err := v.ValidateSignup("carol", "carol@example.com", "!! weak !!"); err != nil {
		t.Fatalf("passwords have no complexity rule: %v", err)
	}

	for _, pw := range []string{"", strings.Repeat("p", 21)} {
		ve := asValidationError(t, v.ValidateSignup("carol", "carol@example.com", pw))
		if !ve.Has(FieldPassword) {
			t.Fatalf("expected password error for len %d", len(pw))
		}
	}
}

func TestValidateSignup_PasswordFitsBcrypt(t *testing.T) {
	v := New()

	accepted := []string{
		strings.Repeat("€", 20), // 20 units, 60 bytes
		strings.Repeat("😀", 10), // 20 units, 40 bytes
		"ab" + strings.Repeat("😀", 9),
	}
	for _, pw := range accepted {
		if err := v.ValidateSignup("dave", "dave@example.com", pw); err != nil {
			t.Fatalf("%q should pass: %v", pw, err)
		}
		if len(pw) > 72 {
			t.Fatalf("accepted password %q is %d bytes", pw, len(pw))
		}
	}

	rejected := []string{
		strings.Repeat("😀", 20), // 20 runes, 40 units, 80 bytes
		strings.Repeat("😀", 11),
		strings.Repeat("€", 21),
	}
	for _, pw := range rejected {
		ve := asValidationError(t, v.ValidateSignup("dave", "dave@example.com", pw))
		if !ve.Has(FieldPassword) {
			t.Fatalf("expected password error for %q", pw)
		}
		if got := ve.Messages(); len(got) != 1 || got[0] != "Password is required." {
			t.Fatalf("unexpected messages %v", got)
		}
	}
}

func TestValidateSignup_CollectsAllFields(t *testing.T) {
	v := New()

	ve := asValidationError(t, v.ValidateSignup("", "not-an-email", ""))
	if len(ve.Fields) != 3 {
		t.Fatalf("expected 3 field errors, got %d: %v", len(ve.Fields), ve.Fields)
	}

	got := ve.Messages()
	want := []string{messages[FieldUsername], messages[FieldEmail], messages[FieldPassword]}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("message %d: want %q, got %q", i, want[i], got[i])
		}
	}
}

func TestValidateSignup_MessagesDoNotLeakValidatorText(t *testing.T) {
	v := New()

	ve := asValidationError(t, v.ValidateSignup("bad name", "nope", strings.Repeat("x", 30)))
	for _, msg := range ve.Messages() {
		for _, leak := range []string{"Key:", "tag", "alphanum", "signupSchema"} {
			if strings.Contains(msg, leak) {
				t.Fatalf("message %q leaks validator detail %q", msg, leak)
			}
		}
	}
}

func TestEmailFormat_SignupAndLogin(t *testing.T) {
	v := New()

	invalid := []string{"", "plainaddress", "@example.com", "user@", "user@@example.com", "user example@example.com"}
	for _, email := range invalid {
		if err := v.ValidateLoginEmail(email); err == nil {
			t.Errorf("login: expected %q to be rejected", email)
		}
		ve := asValidationError(t, v.ValidateSignup("dave", email, "pw"))
		if !ve.Has(FieldEmail) {
			t.Errorf("signup: expected email error for %q", email)
		}
	}

	valid := []string{"dave@example.com", "first.last+tag@sub.example.org"}
	for _, email := range valid {
		if err := v.ValidateLoginEmail(email); err != nil {
			t.Errorf("login: expected %q to pass, got %v", email, err)
		}
		if err := v.ValidateSignup("dave", email, "pw"); err != nil {
			t.Errorf("signup: expected %q to pass, got %v", email, err)
		}
	}
}
