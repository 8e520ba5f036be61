package api

import (
	"net/http"

	"webbu/skill-api/model"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UserFetch returns the caller's profile together with their skills, one
// representative instruction each.
func (a *API) UserFetch(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	user := c.MustGet("user").(*model.User)

	skills, err := a.Skills.UserSkills(user.ID)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to list user skills", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	list := make([]gin.H, 0, len(skills))
	for _, m := range skills {
		list = append(list, gin.H{
			"title":      m.Instruction,
			"visible_id": m.Skill.VisibleID,
			"hosts":      m.Skill.Hosts,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"user":   user,
		"skills": list,
	})
}
