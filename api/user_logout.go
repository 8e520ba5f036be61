package api

import (
	"net/http"

	"webbu/skill-api/middleware"

	"github.com/gin-gonic/gin"
)

// UserLogout clears the session cookies. The cache entry goes too, so a
// cached user object can't be served past the logout.
func (a *API) UserLogout(c *gin.Context) {
	if email, _ := c.Cookie(middleware.EmailCookie); email != "" {
		a.Sessions.Evict(email)
	}

	clearLoginCookies(c)

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
	})
}
