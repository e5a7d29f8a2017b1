package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	flashCookieName = "flash"
	flashTTL        = 10 * time.Minute

	flashSuccess = "success"
	flashDanger  = "danger"
)

// Flash is a one-shot message shown on the next page view.
type Flash struct {
	Category string `json:"category"`
	Message  string `json:"message"`
}

type flashClaims struct {
	Flashes []Flash `json:"flashes"`
	jwt.RegisteredClaims
}

// flashStore keeps pending flashes in an HS256 signed cookie so they survive a
// redirect without server side sessions.
type flashStore struct {
	key []byte
}

func newFlashStore(secretKey string) flashStore {
	return flashStore{key: []byte(secretKey)}
}

func (s flashStore) add(w http.ResponseWriter, r *http.Request, flash Flash) error {
	flashes := append(s.read(r), flash)

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, flashClaims{
		Flashes: flashes,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(flashTTL)),
		},
	})

	signed, err := token.SignedString(s.key)
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Value:    signed,
		Path:     "/",
		Expires:  now.Add(flashTTL),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// pop returns the pending flashes and clears the cookie.
func (s flashStore) pop(w http.ResponseWriter, r *http.Request) []Flash {
	if _, err := r.Cookie(flashCookieName); errors.Is(err, http.ErrNoCookie) {
		return nil
	}

	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return s.read(r)
}

// read returns nil for a missing, expired or tampered cookie.
func (s flashStore) read(r *http.Request) []Flash {
	cookie, err := r.Cookie(flashCookieName)
	if err != nil || cookie.Value == "" {
		return nil
	}

	claims := &flashClaims{}
	_, err = jwt.ParseWithClaims(cookie.Value, claims, func(*jwt.Token) (interface{}, error) {
		return s.key, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil
	}
	return claims.Flashes
}
