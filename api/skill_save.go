package api

import (
	"errors"
	"net/http"

	"webbu/skill-api/model"
	"webbu/skill-api/service"
	"webbu/skill-api/store"
	"webbu/skill-api/validators"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type saveSkillBody struct {
	// Present when editing, empty when publishing
	VisibleID    string   `json:"visible_id"`
	Steps        string   `json:"steps"`
	Instructions []string `json:"instructions"`
	Hosts        []string `json:"hosts"`
}

// SkillSave publishes a new skill or, when visible_id is set, edits an
// existing one. Edits replace the instruction set wholesale.
func (a *API) SkillSave(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(uint)

	var data saveSkillBody
	if err := c.ShouldBind(&data); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid request body",
			"requestID": requestID,
		})

		zap.L().Error("Can't bind request body", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if err := validators.SkillValidator(data.Steps, data.Instructions, data.Hosts); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     err.Error(),
			"requestID": requestID,
		})
		return
	}

	var (
		skill *model.Skill
		err   error
	)

	if data.VisibleID == "" {
		skill, err = a.Skills.Publish(userID, data.Steps, data.Instructions, data.Hosts)
	} else {
		skill, err = a.Skills.Update(data.VisibleID, userID, data.Steps, data.Instructions, data.Hosts)
	}

	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{
				"error":     "Could not find the skill",
				"requestID": requestID,
			})
		case errors.Is(err, service.ErrNotAllowed):
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error":     "No permission to modify this skill",
				"requestID": requestID,
			})
		default:
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"error":     "Internal server error",
				"requestID": requestID,
			})

			zap.L().Error("Failed to save skill", zap.Error(err), zap.String("requestID", requestID))
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":      "success",
		"saved_skill": skill.VisibleID,
	})
}
