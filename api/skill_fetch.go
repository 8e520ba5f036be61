package api

import (
	"errors"
	"net/http"

	"webbu/skill-api/store"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SkillFetch returns one skill with all its trigger phrases. Anyone may
// look at a skill and the steps it executes.
func (a *API) SkillFetch(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	visibleID := c.Param("visibleID")

	skill, instructions, err := a.Skills.Get(visibleID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{
				"error":     "Skill not found",
				"requestID": requestID,
			})
			return
		}

		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to fetch skill", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"skill":        skill,
		"instructions": instructions,
	})
}
