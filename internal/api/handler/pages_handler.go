package handler

import (
	"fmt"
	"math/rand"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/members-auth/internal/api/views"
	"github.com/99minutos/members-auth/internal/core/domain"
)

const catImages = 3

// PagesHandler serves the home, members and not-found pages.
type PagesHandler struct {
	pick func(n int) int
}

func NewPagesHandler() *PagesHandler {
	return &PagesHandler{pick: rand.Intn}
}

// Home greets signed-in visitors and offers signup/login links otherwise.
//
// @Summary      Home page
// @Tags         pages
// @Produce      html
// @Success      200
// @Router       / [get]
func (h *PagesHandler) Home(c echo.Context, id *domain.Identity) error {
	var data views.HomeData
	if id != nil {
		data.Username = id.Username
	}
	return c.Render(http.StatusOK, views.PageHome, data)
}

// Members is the protected page.
//
// @Summary      Members page
// @Tags         pages
// @Produce      html
// @Success      200
// @Success      302  "Redirect to / without a valid session"
// @Router       /members [get]
func (h *PagesHandler) Members(c echo.Context, id domain.Identity) error {
	return c.Render(http.StatusOK, views.PageMembers, views.MembersData{
		Username: id.Username,
		Image:    fmt.Sprintf("cat%d.gif", h.pick(catImages)+1),
	})
}

// NotFound renders the 404 page.
//
// @Summary      Not found
// @Tags         pages
// @Produce      html
// @Failure      404
// @Router       /does_not_exist [get]
func (h *PagesHandler) NotFound(c echo.Context) error {
	return RenderNotFound(c)
}

// RenderNotFound writes the 404 page.
func RenderNotFound(c echo.Context) error {
	return c.Render(http.StatusNotFound, views.PageMessages, views.MessagesData{
		Messages: []string{"Page not found - 404"},
	})
}
