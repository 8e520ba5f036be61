package api

import (
	"errors"
	"net/http"

	"webbu/skill-api/service"
	"webbu/skill-api/store"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SkillDelete marks the caller's skill as deleted. The record stays behind
// the flag so votes and execution records keep their reference.
func (a *API) SkillDelete(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(uint)
	visibleID := c.Param("visibleID")

	if err := a.Skills.Delete(visibleID, userID); err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{
				"error":     "Skill not found",
				"requestID": requestID,
			})
		case errors.Is(err, service.ErrNotAllowed):
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error":     "Not allowed to delete",
				"requestID": requestID,
			})
		default:
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"error":     "Internal server error",
				"requestID": requestID,
			})

			zap.L().Error("Failed to delete skill", zap.Error(err), zap.String("requestID", requestID))
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
	})
}
