package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func runGuestID(existing string) (*httptest.ResponseRecorder, string) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", nil)
	if existing != "" {
		c.Request.AddCookie(&http.Cookie{Name: GuestIDCookie, Value: existing})
	}

	NewGuestIDMiddleware()(c)

	return w, c.GetString("guestID")
}

func TestGuestIDCookieHonorsSSLConfig(t *testing.T) {
	viper.Set("host.ssl.enabled", false)
	w, id := runGuestID("")
	assert.NotEmpty(t, id)

	cookie := w.Header().Get("Set-Cookie")
	assert.Contains(t, cookie, GuestIDCookie+"=")
	assert.NotContains(t, cookie, "Secure", "plain http must not mint a Secure cookie")

	viper.Set("host.ssl.enabled", true)
	w, id = runGuestID("")
	assert.NotEmpty(t, id)

	cookie = w.Header().Get("Set-Cookie")
	assert.Contains(t, cookie, "Secure")
	assert.Contains(t, cookie, "SameSite=None")
}

func TestGuestIDReusesExistingCookie(t *testing.T) {
	w, id := runGuestID("guest-already-set")

	assert.Equal(t, "guest-already-set", id)
	assert.Empty(t, w.Header().Get("Set-Cookie"))
}
