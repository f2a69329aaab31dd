// Package cookie carries the session token to and from the browser.
//
// The cookie value is an HS256-signed JWT whose only claims are the session
// token (jti) and its expiry. Session contents never leave the server.
package cookie

import (
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/99minutos/members-auth/internal/core/domain"
)

const Name = "session"

// Codec signs and verifies session cookies.
type Codec struct {
	secret []byte
	secure bool
	now    func() time.Time
}

func NewCodec(secret string, secure bool) (*Codec, error) {
	if secret == "" {
		return nil, errors.New("cookie: empty signing secret")
	}
	return &Codec{secret: []byte(secret), secure: secure, now: time.Now}, nil
}

// Issue returns the cookie that hands sess to the client.
func (c *Codec) Issue(sess *domain.Session) (*http.Cookie, error) {
	claims := jwt.RegisteredClaims{
		ID:        sess.Token,
		IssuedAt:  jwt.NewNumericDate(c.now()),
		ExpiresAt: jwt.NewNumericDate(sess.ExpiresAt),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return nil, err
	}

	maxAge := int(time.Until(sess.ExpiresAt).Seconds())
	if maxAge < 1 {
		maxAge = 1
	}
	return c.base(signed, maxAge, sess.ExpiresAt), nil
}

// Token extracts the session token from r. Missing, tampered and expired
// cookies all yield "".
func (c *Codec) Token(r *http.Request) string {
	ck, err := r.Cookie(Name)
	if err != nil || ck.Value == "" {
		return ""
	}

	var claims jwt.RegisteredClaims
	tkn, err := jwt.ParseWithClaims(ck.Value, &claims, func(*jwt.Token) (interface{}, error) {
		return c.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(c.now),
	)
	if err != nil || !tkn.Valid {
		return ""
	}
	return claims.ID
}

// Clear returns a cookie that removes the session cookie from the client.
func (c *Codec) Clear() *http.Cookie {
	return c.base("", -1, time.Unix(0, 0))
}

func (c *Codec) base(value string, maxAge int, expires time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     Name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		Expires:  expires,
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: http.SameSiteLaxMode,
	}
}
