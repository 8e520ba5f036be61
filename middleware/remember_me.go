package middleware

import (
	"errors"
	"net/http"

	"webbu/skill-api/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Cookie names shared with the web and extension clients. The browser
// extension can't always send cookies cross-origin, so every one of these
// also works as a query parameter of the same name.
const (
	EmailCookie    = "ck_email"
	UsernameCookie = "ck_username"
	TokenCookie    = "ck_remember_me_token"
	SeriesCookie   = "ck_remember_me_token_series_id"
	GuestIDCookie  = "ck_guest_id"
)

// ExtractCredentials pulls the remember-me triple from cookies, falling
// back to query parameters for the extension. Empty strings mean the caller
// presented nothing.
func ExtractCredentials(c *gin.Context) (email, token, seriesID string) {
	email, _ = c.Cookie(EmailCookie)
	token, _ = c.Cookie(TokenCookie)
	seriesID, _ = c.Cookie(SeriesCookie)

	if email == "" && token == "" && seriesID == "" {
		email = c.Query(EmailCookie)
		token = c.Query(TokenCookie)
		seriesID = c.Query(SeriesCookie)
	}

	return email, token, seriesID
}

// NewRememberMeMiddleware authenticates the request through the session
// cache and puts the resolved user on the context. Any lookup miss is a
// uniform 401; only store failures are 500s.
func NewRememberMeMiddleware(sessions *service.SessionCache) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.MustGet("requestID").(string)

		email, token, seriesID := ExtractCredentials(c)
		if email == "" || token == "" || seriesID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":     "not_logged_in",
				"requestID": requestID,
			})
			return
		}

		user, err := sessions.Authenticate(email, token, seriesID)
		if err != nil {
			if errors.Is(err, service.ErrNotAuthenticated) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
					"error":     "not_logged_in",
					"requestID": requestID,
				})
				return
			}

			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"error":     "internal_server_error",
				"requestID": requestID,
			})

			zap.L().Error("Failed to authenticate", zap.Error(err), zap.String("requestID", requestID))
			return
		}

		c.Set("userID", user.ID)
		c.Set("user", user)
		c.Next()
	}
}
