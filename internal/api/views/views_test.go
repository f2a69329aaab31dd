package views

import (
	"bytes"
	"strings"
	"testing"
)

func render(t *testing.T, name string, data any) string {
	t.Helper()
	r, err := NewRenderer()
	if err != nil {
		t.Fatalf("renderer: %v", err)
	}
	var buf bytes.Buffer
	if err := r.Render(&buf, name, data, nil); err != nil {
		t.Fatalf("render %s: %v", name, err)
	}
	return buf.String()
}

func TestHome_AnonymousAndGreeting(t *testing.T) {
	anon := render(t, PageHome, HomeData{})
	if !strings.Contains(anon, `action="/signup"`) || !strings.Contains(anon, `action="/login"`) {
		t.Fatalf("anonymous home should link to signup and login: %s", anon)
	}
	if strings.Contains(anon, "Hello") {
		t.Fatalf("anonymous home should not greet")
	}

	greeted := render(t, PageHome, HomeData{Username: "alice"})
	if !strings.Contains(greeted, "Hello, alice!") || !strings.Contains(greeted, `action="/logout"`) {
		t.Fatalf("authenticated home should greet: %s", greeted)
	}
}

func TestMembers_EscapesUsername(t *testing.T) {
	out := render(t, PageMembers, MembersData{Username: "<script>x</script>", Image: "cat1.gif"})
	if strings.Contains(out, "<script>") {
		t.Fatalf("username must be escaped: %s", out)
	}
	if !strings.Contains(out, `src="/static/cat1.gif"`) {
		t.Fatalf("expected cat image: %s", out)
	}
}

func TestMessages(t *testing.T) {
	out := render(t, PageMessages, MessagesData{Messages: []string{"Username is required.", "Email is required."}, RetryURL: "/signup"})
	for _, want := range []string{"Username is required.", "Email is required.", `href="/signup"`} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in %s", want, out)
		}
	}
}

func TestForms(t *testing.T) {
	signup := render(t, PageSignup, nil)
	for _, field := range []string{`name="username"`, `name="email"`, `name="password"`, `action="/signupSubmit"`} {
		if !strings.Contains(signup, field) {
			t.Fatalf("signup form missing %s", field)
		}
	}
	login := render(t, PageLogin, nil)
	if !strings.Contains(login, `action="/loggingin"`) {
		t.Fatalf("login form should post to /loggingin")
	}
}
