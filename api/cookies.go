package api

import (
	"webbu/skill-api/middleware"

	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
)

const loginCookieMaxAge = 90 * 24 * 60 * 60

// setLoginCookies hands the session pair to the browser. The token halves
// are httponly; email and username stay readable so the frontend can tell
// whether someone looks logged in without a round trip.
func setLoginCookies(c *gin.Context, email, token, seriesID, username string) {
	secure := viper.GetBool("host.ssl.enabled")

	c.SetCookie(middleware.TokenCookie, token, loginCookieMaxAge, "/", "", secure, true)
	c.SetCookie(middleware.SeriesCookie, seriesID, loginCookieMaxAge, "/", "", secure, true)
	c.SetCookie(middleware.EmailCookie, email, loginCookieMaxAge, "/", "", secure, false)
	c.SetCookie(middleware.UsernameCookie, username, loginCookieMaxAge, "/", "", secure, false)
}

func clearLoginCookies(c *gin.Context) {
	secure := viper.GetBool("host.ssl.enabled")

	for _, name := range []string{
		middleware.TokenCookie,
		middleware.SeriesCookie,
		middleware.EmailCookie,
		middleware.UsernameCookie,
	} {
		c.SetCookie(name, "", -1, "/", "", secure, false)
	}
}

// optionalUserID resolves the caller's user id when valid credentials are
// present, nil otherwise. Vote and execution endpoints work for guests too.
func (a *API) optionalUserID(c *gin.Context) *uint {
	email, token, seriesID := middleware.ExtractCredentials(c)
	if email == "" || token == "" || seriesID == "" {
		return nil
	}

	user, err := a.Sessions.Authenticate(email, token, seriesID)
	if err != nil {
		return nil
	}

	return &user.ID
}
