package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/members-auth/internal/api/metrics"
	"github.com/99minutos/members-auth/internal/api/views"
	"github.com/99minutos/members-auth/internal/core/domain"
	"github.com/99minutos/members-auth/internal/core/ports"
)

// CookieJar moves session tokens between responses and requests.
type CookieJar interface {
	Issue(sess *domain.Session) (*http.Cookie, error)
	Token(r *http.Request) string
	Clear() *http.Cookie
}

type AuthHandler struct {
	auth    ports.AuthService
	cookies CookieJar
	metrics *metrics.Metrics
}

func NewAuthHandler(auth ports.AuthService, cookies CookieJar, m *metrics.Metrics) *AuthHandler {
	return &AuthHandler{auth: auth, cookies: cookies, metrics: m}
}

type signupRequest struct {
	Username string `form:"username"`
	Email    string `form:"email"`
	Password string `form:"password"`
}

// Username is accepted for compatibility with older login forms and ignored.
type loginRequest struct {
	Username string `form:"username"`
	Email    string `form:"email"`
	Password string `form:"password"`
}

// SignupForm renders the account creation form.
//
// @Summary      Signup form
// @Tags         auth
// @Produce      html
// @Success      200
// @Router       /signup [get]
func (h *AuthHandler) SignupForm(c echo.Context) error {
	return c.Render(http.StatusOK, views.PageSignup, nil)
}

// SignupSubmit creates an account and signs it in.
//
// @Summary      Create an account
// @Tags         auth
// @Accept       x-www-form-urlencoded
// @Produce      html
// @Param        username  formData  string  true  "Alphanumeric, at most 20 characters"
// @Param        email     formData  string  true  "Email address"
// @Param        password  formData  string  true  "At most 20 characters"
// @Success      302  "Redirect to /members"
// @Failure      400  "Field error messages"
// @Failure      500  "Internal server error"
// @Router       /signupSubmit [post]
func (h *AuthHandler) SignupSubmit(c echo.Context) error {
	var req signupRequest
	if err := bindForm(c, &req, "username", "email", "password"); err != nil {
		return err
	}

	sess, err := h.auth.Signup(c.Request().Context(), ports.SignupInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return err
	}

	h.metrics.SignupsTotal.Inc()
	return h.startSession(c, sess)
}

// LoginForm renders the login form.
//
// @Summary      Login form
// @Tags         auth
// @Produce      html
// @Success      200
// @Router       /login [get]
func (h *AuthHandler) LoginForm(c echo.Context) error {
	return c.Render(http.StatusOK, views.PageLogin, nil)
}

// LoginSubmit verifies credentials and starts a session.
//
// @Summary      Log in
// @Tags         auth
// @Accept       x-www-form-urlencoded
// @Produce      html
// @Param        email     formData  string  true   "Email address"
// @Param        password  formData  string  true   "Password"
// @Param        username  formData  string  false  "Ignored"
// @Success      302  "Redirect to /members"
// @Failure      400  "Malformed request"
// @Failure      500  "Internal server error"
// @Router       /loggingin [post]
func (h *AuthHandler) LoginSubmit(c echo.Context) error {
	var req loginRequest
	if err := bindForm(c, &req, "email", "password"); err != nil {
		return err
	}

	sess, err := h.auth.Login(c.Request().Context(), ports.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		result := metrics.LoginError
		if errors.Is(err, domain.ErrInvalidCredentials) {
			result = metrics.LoginInvalid
		}
		h.metrics.LoginAttemptsTotal.WithLabelValues(result).Inc()
		return err
	}

	h.metrics.LoginAttemptsTotal.WithLabelValues(metrics.LoginSuccess).Inc()
	return h.startSession(c, sess)
}

// Logout ends the caller's session, if any.
//
// @Summary      Log out
// @Tags         auth
// @Success      302  "Redirect to /"
// @Router       /logout [get]
func (h *AuthHandler) Logout(c echo.Context) error {
	token := h.cookies.Token(c.Request())
	c.SetCookie(h.cookies.Clear())
	h.metrics.LogoutsTotal.Inc()

	if err := h.auth.Logout(c.Request().Context(), token); err != nil {
		return err
	}
	return c.Redirect(http.StatusFound, "/")
}

func (h *AuthHandler) startSession(c echo.Context, sess *domain.Session) error {
	ck, err := h.cookies.Issue(sess)
	if err != nil {
		return err
	}
	c.SetCookie(ck)
	return c.Redirect(http.StatusFound, "/members")
}
