package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/99minutos/members-auth/internal/api/handler"
	"github.com/99minutos/members-auth/internal/api/views"
	"github.com/99minutos/members-auth/internal/core/domain"
)

const (
	msgInvalidCredentials = "Invalid email/password combination."
	msgMalformed          = "Malformed request."
	msgInternal           = "Internal server error"
)

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - renders validation failures as a list of field messages with a retry link.
//   - renders every login failure as the same generic message.
//   - sends callers rejected by the access gate back to "/".
//   - logs unexpected errors without leaking details to the client.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		if errors.Is(err, domain.ErrUnauthorized) {
			_ = c.Redirect(http.StatusFound, "/")
			return
		}

		var he *echo.HTTPError
		if errors.As(err, &he) && he.Code == http.StatusNotFound {
			_ = handler.RenderNotFound(c)
			return
		}

		code, data := resolveError(err, log, c)
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.Render(code, views.PageMessages, data)
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, views.MessagesData) {
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return http.StatusBadRequest, views.MessagesData{Messages: ve.Messages(), RetryURL: "/signup"}
	}

	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusOK, views.MessagesData{Messages: []string{msgInvalidCredentials}, RetryURL: "/login"}
	case errors.Is(err, domain.ErrMalformedRequest):
		return http.StatusBadRequest, views.MessagesData{Messages: []string{msgMalformed}, RetryURL: retryURL(c)}
	}

	// Echo's own errors (405, 413, ...).
	var he *echo.HTTPError
	if errors.As(err, &he) && he.Code < http.StatusInternalServerError {
		return he.Code, views.MessagesData{Messages: []string{fmt.Sprintf("%v", he.Message)}}
	}

	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Str("request_id", c.Response().Header().Get(echo.HeaderXRequestID)).
		Msg("unhandled error")

	return http.StatusInternalServerError, views.MessagesData{Messages: []string{msgInternal}}
}

func retryURL(c echo.Context) string {
	switch c.Path() {
	case "/signupSubmit":
		return "/signup"
	case "/loggingin":
		return "/login"
	}
	return ""
}
