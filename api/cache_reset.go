package api

import (
	"net/http"
	"slices"

	"webbu/skill-api/model"

	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// CacheReset clears the whole session cache. Escape hatch for stale cached
// users after out-of-band account edits. Requires an authenticated operator
// from the allow-list plus the shared edit key; anything else is a uniform
// refusal.
func (a *API) CacheReset(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	user := c.MustGet("user").(*model.User)

	refused := func() {
		c.JSON(http.StatusOK, gin.H{
			"refused": "not done",
		})
	}

	if !slices.Contains(viper.GetStringSlice("auth.admin_emails"), user.Email) {
		refused()
		return
	}

	if c.Query("code") != viper.GetString("auth.edit_key") {
		zap.L().Warn("Cache reset with bad code", zap.String("email", user.Email),
			zap.String("requestID", requestID))
		refused()
		return
	}

	a.Sessions.Clear()

	zap.L().Info("Session cache cleared", zap.String("email", user.Email),
		zap.String("requestID", requestID))

	c.JSON(http.StatusOK, gin.H{
		"success": "done",
	})
}
