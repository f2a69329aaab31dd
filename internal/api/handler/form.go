package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/99minutos/members-auth/internal/core/domain"
)

// bindForm binds a urlencoded body into dst. A key listed in required that
// is absent from the form altogether is a malformed request; an empty value
// is left to domain validation.
func bindForm(c echo.Context, dst any, required ...string) error {
	params, err := c.FormParams()
	if err != nil {
		return domain.ErrMalformedRequest
	}
	for _, key := range required {
		if _, ok := params[key]; !ok {
			return domain.ErrMalformedRequest
		}
	}
	if err := (&echo.DefaultBinder{}).BindBody(c, dst); err != nil {
		return domain.ErrMalformedRequest
	}
	return nil
}
