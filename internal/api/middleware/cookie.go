package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// CookiePolicy describes how the session-id cookie is issued: name, signing
// secret, lifetime, and whether the Secure flag is set (tied to the
// deployment environment).
type CookiePolicy struct {
	Name   string
	Secret string
	TTL    time.Duration
	Secure bool
}

// EncodeSessionID wraps a session id in a signed HS256 token so the cookie is
// tamper-evident. The token carries nothing but the sid and its expiry; all
// authorization state stays server-side.
func (p CookiePolicy) EncodeSessionID(sid string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sid": sid,
		"iat": now.Unix(),
		"exp": now.Add(p.TTL).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(p.Secret))
	if err != nil {
		return "", fmt.Errorf("sign session cookie: %w", err)
	}
	return signed, nil
}

// DecodeSessionID verifies the cookie value and extracts the session id.
func (p CookiePolicy) DecodeSessionID(value string) (string, error) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(value, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(p.Secret), nil
	})
	if err != nil || !tkn.Valid {
		return "", fmt.Errorf("invalid session cookie: %w", err)
	}

	sid, _ := claims["sid"].(string)
	if sid == "" {
		return "", fmt.Errorf("session cookie missing sid claim")
	}
	return sid, nil
}

// NewCookie builds the HTTP-only session cookie carrying the signed sid.
func (p CookiePolicy) NewCookie(signedSID string) *http.Cookie {
	return &http.Cookie{
		Name:     p.Name,
		Value:    signedSID,
		Path:     "/",
		MaxAge:   int(p.TTL / time.Second),
		HttpOnly: true,
		Secure:   p.Secure,
		SameSite: http.SameSiteLaxMode,
	}
}

// ClearCookie builds an expired cookie that removes the session cookie from
// the client.
func (p CookiePolicy) ClearCookie() *http.Cookie {
	return &http.Cookie{
		Name:     p.Name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   p.Secure,
		SameSite: http.SameSiteLaxMode,
	}
}
