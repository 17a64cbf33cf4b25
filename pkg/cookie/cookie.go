// Package cookie manages the session cookie that carries the admin's
// full-access token.
//
// The token inside the cookie is already signed (JWT), so the manager adds no
// signing of its own; its job is consistent security attributes. Defaults are
// HttpOnly with SameSite=Strict, which keeps the token away from scripts and
// cross-site requests. The Secure flag comes from configuration so local
// development over plain HTTP still works.
package cookie

import (
	"errors"
	"net/http"
	"time"
)

// ErrCookieNotFound is returned by Get when the request carries no cookie
// with the requested name.
var ErrCookieNotFound = errors.New("cookie: not found")

// Manager writes and reads cookies with a fixed set of security attributes.
type Manager struct {
	defaults Options
}

// Options are the cookie attributes applied on every write.
type Options struct {
	Path     string
	Domain   string
	Secure   bool
	HTTPOnly bool
	SameSite http.SameSite
}

// Option mutates the manager defaults at construction.
type Option func(*Options)

func WithPath(path string) Option {
	return func(o *Options) { o.Path = path }
}

func WithDomain(domain string) Option {
	return func(o *Options) { o.Domain = domain }
}

func WithSecure(secure bool) Option {
	return func(o *Options) { o.Secure = secure }
}

func WithSameSite(mode http.SameSite) Option {
	return func(o *Options) { o.SameSite = mode }
}

// New creates a Manager. Without options the cookies are HttpOnly,
// SameSite=Strict, path "/".
func New(opts ...Option) *Manager {
	defaults := Options{
		Path:     "/",
		HTTPOnly: true,
		SameSite: http.SameSiteStrictMode,
	}
	for _, opt := range opts {
		opt(&defaults)
	}
	return &Manager{defaults: defaults}
}

// Set writes a cookie that expires after maxAge.
func (m *Manager) Set(w http.ResponseWriter, name, value string, maxAge time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     m.defaults.Path,
		Domain:   m.defaults.Domain,
		MaxAge:   int(maxAge.Seconds()),
		Secure:   m.defaults.Secure,
		HttpOnly: m.defaults.HTTPOnly,
		SameSite: m.defaults.SameSite,
	})
}

// Get returns the named cookie's value.
func (m *Manager) Get(r *http.Request, name string) (string, error) {
	c, err := r.Cookie(name)
	if err != nil {
		if errors.Is(err, http.ErrNoCookie) {
			return "", ErrCookieNotFound
		}
		return "", err
	}
	return c.Value, nil
}

// Clear instructs the client to discard the named cookie immediately.
func (m *Manager) Clear(w http.ResponseWriter, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     m.defaults.Path,
		Domain:   m.defaults.Domain,
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		Secure:   m.defaults.Secure,
		HttpOnly: m.defaults.HTTPOnly,
		SameSite: m.defaults.SameSite,
	})
}
