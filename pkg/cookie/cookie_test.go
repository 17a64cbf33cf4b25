package cookie_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openipo/admin-backend/pkg/cookie"
)

func TestSetDefaults(t *testing.T) {
	t.Parallel()

	m := cookie.New()
	w := httptest.NewRecorder()
	m.Set(w, "admin_token", "tok", 12*time.Hour)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	c := cookies[0]
	assert.Equal(t, "admin_token", c.Name)
	assert.Equal(t, "tok", c.Value)
	assert.True(t, c.HttpOnly)
	assert.Equal(t, http.SameSiteStrictMode, c.SameSite)
	assert.False(t, c.Secure)
	assert.Equal(t, "/", c.Path)
	assert.Equal(t, int((12 * time.Hour).Seconds()), c.MaxAge)
}

func TestSetWithOptions(t *testing.T) {
	t.Parallel()

	m := cookie.New(
		cookie.WithSecure(true),
		cookie.WithPath("/api"),
		cookie.WithSameSite(http.SameSiteLaxMode),
	)
	w := httptest.NewRecorder()
	m.Set(w, "admin_token", "tok", time.Hour)

	c := w.Result().Cookies()[0]
	assert.True(t, c.Secure)
	assert.Equal(t, "/api", c.Path)
	assert.Equal(t, http.SameSiteLaxMode, c.SameSite)
}

func TestGet(t *testing.T) {
	t.Parallel()

	m := cookie.New()

	r := httptest.NewRequest("GET", "/", nil)
	r.AddCookie(&http.Cookie{Name: "admin_token", Value: "tok"})

	value, err := m.Get(r, "admin_token")
	require.NoError(t, err)
	assert.Equal(t, "tok", value)

	_, err = m.Get(r, "missing")
	assert.ErrorIs(t, err, cookie.ErrCookieNotFound)
}

func TestClear(t *testing.T) {
	t.Parallel()

	m := cookie.New()
	w := httptest.NewRecorder()
	m.Clear(w, "admin_token")

	c := w.Result().Cookies()[0]
	assert.Empty(t, c.Value)
	assert.Equal(t, -1, c.MaxAge)
	assert.True(t, c.Expires.Before(time.Now()))
}
