package api

import (
	"errors"
	"net/http"

	"webbu/skill-api/store"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type voteBody struct {
	// +1 or -1
	Vote       int    `json:"vote"`
	CurrentURL string `json:"current_url"`
}

type executedBody struct {
	// "click" or "keyboard"
	Trigger    string `json:"trigger"`
	CurrentURL string `json:"current_url"`
}

// SkillVote records a vote from a user or guest, with the URL it was cast
// on so we can tell where a skill works well.
func (a *API) SkillVote(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	guestID := c.MustGet("guestID").(string)
	visibleID := c.Param("visibleID")

	var data voteBody
	if err := c.ShouldBind(&data); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid request body",
			"requestID": requestID,
		})
		return
	}

	if data.Vote != 1 && data.Vote != -1 {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "Vote must be +1 or -1",
			"requestID": requestID,
		})
		return
	}

	err := a.Skills.Vote(visibleID, data.Vote, a.optionalUserID(c), guestID, data.CurrentURL)
	if err != nil {
		a.skillEventError(c, err, requestID, visibleID, "Failed to save vote")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
	})
}

// SkillExecuted records one run of a skill.
func (a *API) SkillExecuted(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	guestID := c.MustGet("guestID").(string)
	visibleID := c.Param("visibleID")

	var data executedBody
	if err := c.ShouldBind(&data); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid request body",
			"requestID": requestID,
		})
		return
	}

	err := a.Skills.RecordExecution(visibleID, a.optionalUserID(c), guestID, data.Trigger, data.CurrentURL)
	if err != nil {
		a.skillEventError(c, err, requestID, visibleID, "Failed to save execution")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
	})
}

func (a *API) skillEventError(c *gin.Context, err error, requestID, visibleID, logMsg string) {
	if errors.Is(err, store.ErrNotFound) {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{
			"error":     "Invalid skill " + visibleID,
			"requestID": requestID,
		})
		return
	}

	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
		"error":     "Internal server error",
		"requestID": requestID,
	})

	zap.L().Error(logMsg, zap.Error(err),
		zap.String("visibleID", visibleID), zap.String("requestID", requestID))
}
