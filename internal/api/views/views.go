// Package views renders the HTML pages of the members site.
package views

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/labstack/echo/v4"
)

// Page names accepted by Renderer.
const (
	PageHome     = "home"
	PageSignup   = "signup"
	PageLogin    = "login"
	PageMembers  = "members"
	PageMessages = "messages"
)

//go:embed templates/*.html
var templateFS embed.FS

// HomeData is empty for anonymous visitors.
type HomeData struct {
	Username string
}

type MembersData struct {
	Username string
	Image    string
}

// MessagesData backs every error and notice page.
type MessagesData struct {
	Messages []string
	RetryURL string
}

// Renderer implements echo.Renderer.
type Renderer struct {
	templates *template.Template
}

func NewRenderer() (*Renderer, error) {
	t, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Renderer{templates: t}, nil
}

func (r *Renderer) Render(w io.Writer, name string, data interface{}, _ echo.Context) error {
	return r.templates.ExecuteTemplate(w, name, data)
}
