package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Callers only show the first few results.
const maxSearchResults = 5

// SkillSearch matches the free-text query against instruction phrases and
// returns the top results, exact matches first.
func (a *API) SkillSearch(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	query := c.Query("query")

	results, err := a.Search.Search(query)
	if err != nil {
		zap.L().Error("Search failed", zap.Error(err),
			zap.String("query", query), zap.String("requestID", requestID))

		// A partial-stage failure still leaves the exact matches usable;
		// only a completely empty answer is an error to the caller
		if len(results) == 0 {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"error":     "Could not find skills, try again",
				"requestID": requestID,
			})
			return
		}
	}

	if len(results) > maxSearchResults {
		results = results[:maxSearchResults]
	}

	skills := make([]gin.H, 0, len(results))
	for _, m := range results {
		skills = append(skills, gin.H{
			"title":      m.Instruction,
			"visible_id": m.Skill.VisibleID,
			"steps":      m.Skill.Steps,
			"author_id":  m.Skill.AuthorID,
			"hosts":      m.Skill.Hosts,
		})
	}

	userMsg := "Found skills"
	if len(skills) == 0 {
		userMsg = "No skills found"
	}

	c.JSON(http.StatusOK, gin.H{
		"user_msg": userMsg,
		"skills":   skills,
	})
}
