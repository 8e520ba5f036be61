package api

import (
	"errors"
	"fmt"
	"net/http"

	"webbu/skill-api/service"
	"webbu/skill-api/store"
	"webbu/skill-api/validators"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type registerBody struct {
	Email      string `json:"email"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	InviteCode string `json:"invite_code"`
}

func checkEmailMsg(email string) string {
	return fmt.Sprintf("Check your email (%s) for the magic link to login. If you can't find it, check the spam folder or the Promotions tab and drag the email into the primary inbox", email)
}

// UserRegister creates an account, or mails a login link when the email is
// already on file. Both outcomes answer 200: the response never confirms
// whether an account existed beforehand.
func (a *API) UserRegister(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	var data registerBody
	if err := c.ShouldBind(&data); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid request body",
			"requestID": requestID,
		})

		zap.L().Error("Can't bind request body", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if err := validators.EmailValidator(data.Email); err != nil {
		zap.L().Debug("Invalid email", zap.Error(err), zap.String("requestID", requestID))

		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     err.Error(),
			"requestID": requestID,
		})
		return
	}

	res, err := a.Accounts.RegisterOrSendLink(data.Email, data.FirstName, data.LastName, data.InviteCode)
	if err != nil {
		var conflict *store.ConflictError
		if errors.As(err, &conflict) {
			// Email conflicts never reach this point (they become the
			// link-sent path); this is the rare generated-username clash
			c.AbortWithStatusJSON(http.StatusConflict, gin.H{
				"error":     "Please try again",
				"requestID": requestID,
			})
			return
		}

		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to register user", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if res.LinkSent {
		c.JSON(http.StatusOK, gin.H{
			"status": "link_sent",
			"msg":    checkEmailMsg(data.Email),
		})
		return
	}

	setLoginCookies(c, res.User.Email, res.Token, res.SeriesID, res.User.Username)

	c.JSON(http.StatusOK, gin.H{
		"status":   "created",
		"username": res.User.Username,
		"msg":      checkEmailMsg(data.Email),
	})
}

// UserLoginLink is where the emailed magic link lands. The pair in the URL
// is consumed and replaced by a fresh long-lived one.
func (a *API) UserLoginLink(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	email := c.Query("email")
	token := c.Query("token1")
	seriesID := c.Query("token2")

	user, newToken, newSeriesID, err := a.Accounts.ConsumeLink(email, token, seriesID)
	if err != nil {
		if errors.Is(err, service.ErrNotAuthenticated) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":     "Email and tokens do not match. Please request a new link",
				"requestID": requestID,
			})
			return
		}

		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to consume magic link", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	setLoginCookies(c, user.Email, newToken, newSeriesID, user.Username)

	c.JSON(http.StatusOK, gin.H{
		"status":   "success",
		"username": user.Username,
	})
}
