package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/spf13/viper"
)

const guestCookieMaxAge = 720 * 24 * 60 * 60 // ~2 years

// NewGuestIDMiddleware makes sure every caller has a guest id so votes and
// execution records from logged-out users can still be grouped. The
// extension's cross-site calls need SameSite=None, which browsers only accept
// on Secure cookies, so plain-http deployments keep the default SameSite or
// the cookie would be dropped and re-minted on every request.
func NewGuestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		guestID, err := c.Cookie(GuestIDCookie)
		if err != nil || guestID == "" {
			guestID = uuid.NewString()

			secure := viper.GetBool("host.ssl.enabled")
			if secure {
				c.SetSameSite(http.SameSiteNoneMode)
			}
			c.SetCookie(GuestIDCookie, guestID, guestCookieMaxAge, "/", "", secure, true)
		}

		c.Set("guestID", guestID)
		c.Next()
	}
}
