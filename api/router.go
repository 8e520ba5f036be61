// Package api contains all endpoints available
package api

import (
	"fmt"
	"time"

	"webbu/skill-api/db"
	"webbu/skill-api/middleware"
	"webbu/skill-api/service"
	"webbu/skill-api/store"

	cache "github.com/chenyahui/gin-cache"
	"github.com/chenyahui/gin-cache/persist"
	ginzap "github.com/gin-contrib/zap"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/gorm"
)

const (
	gray  = "\x1b[90m"
	reset = "\x1b[0m"
)

var responseCache = persist.NewMemoryStore(time.Minute)

type API struct {
	DB       *gorm.DB
	Router   *gin.Engine
	Sessions *service.SessionCache
	Accounts *service.Accounts
	Skills   *service.Skills
	Search   *service.Search
}

func NewRouter() (*API, error) {
	a := &API{}

	conn, err := db.New()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database, %w", err)
	}
	a.DB = conn

	makeLogger()

	creds := store.NewCredentials(conn)
	skillStore := store.NewSkills(conn)

	issuer := service.NewTokenIssuer(creds)
	a.Sessions = service.NewSessionCache(issuer, time.Duration(viper.GetInt("auth.session_ttl_hours"))*time.Hour)
	a.Accounts = service.NewAccounts(creds, issuer, service.SMTPMailer{})
	a.Skills = service.NewSkills(skillStore)
	a.Search = service.NewSearch(skillStore)

	router := gin.New()
	a.Router = router

	router.Use(
		cors.New(cors.Config{
			AllowOrigins:     viper.GetStringSlice("cors.allow_origins"),
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
			ExposeHeaders:    []string{"Content-Length"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}),
		gin.Recovery(),
		middleware.NewRequestIDMiddleware(),
		ginzap.GinzapWithConfig(zap.L(), &ginzap.Config{
			TimeFormat: "15:04:05.000",
			UTC:        true,
			Skipper: func(c *gin.Context) bool {
				return c.Request.Method == "HEAD"
			},
			Context: func(c *gin.Context) []zapcore.Field {
				fields := []zapcore.Field{}

				if v := c.GetString("requestID"); v != "" {
					fields = append(fields, zap.String("request_id", v))
				}

				if v, ok := c.Get("userID"); ok {
					fields = append(fields, zap.Any("userID", v))
				}

				return fields
			},
		}),
	)

	router.HandleMethodNotAllowed = true
	router.RedirectFixedPath = true

	auth := middleware.NewRememberMeMiddleware(a.Sessions)
	guest := middleware.NewGuestIDMiddleware()
	authRate := middleware.RateLimiterMiddleware(middleware.RateLimiterConfig{
		RequestsPerSecond: 2,
		Burst:             5,
	})

	main := router.Group("/api")
	{
		// HEAD /api/heartbeat 		-> Used to check if the server is alive
		main.HEAD("/heartbeat", a.Heartbeat)
	}

	users := main.Group("/users", middleware.BodySizeLimiter(1<<20))
	{
		// POST /api/users 		-> Registers a new user or mails a login link
		users.POST("", authRate, a.UserRegister)

		// GET /api/users/login_link	-> Consumes a magic link and starts a session
		users.GET("/login_link", authRate, a.UserLoginLink)

		// POST /api/users/logout 	-> Clears the session cookies
		users.POST("/logout", a.UserLogout)

		// GET /api/users/me		-> Returns the profile with the user's skills
		users.GET("/me", auth, a.UserFetch)
	}

	skills := main.Group("/skills", middleware.BodySizeLimiter(1<<20))
	{
		// GET /api/skills/search	-> Searches skills by instruction text
		skills.GET("/search", a.SkillSearch)

		// GET /api/skills/:visibleID	-> Returns one skill with its instructions
		skills.GET("/:visibleID", cacheFor(30), a.SkillFetch)

		// POST /api/skills		-> Publishes a new skill or edits an existing one
		skills.POST("", auth, a.SkillSave)

		// DELETE /api/skills/:visibleID -> Marks a skill deleted (author only)
		skills.DELETE("/:visibleID", auth, a.SkillDelete)

		// POST /api/skills/:visibleID/vote	-> Records a +1/-1
		skills.POST("/:visibleID/vote", guest, a.SkillVote)

		// POST /api/skills/:visibleID/executed	-> Records a run
		skills.POST("/:visibleID/executed", guest, a.SkillExecuted)
	}

	admin := main.Group("/admin")
	{
		// POST /api/admin/cache_reset	-> Clears the session cache (operators only)
		admin.POST("/cache_reset", auth, a.CacheReset)
	}

	maxAge := time.Duration(viper.GetInt("auth.token_max_age_days")) * 24 * time.Hour

	if viper.GetBool("cleanup-tokens") {
		if n, err := creds.DeleteTokenPairsBefore(time.Now().Add(-maxAge)); err == nil {
			zap.L().Info("Startup token sweep finished", zap.Int64("deleted", n))
		} else {
			zap.L().Error("Startup token sweep failed", zap.Error(err))
		}
	}

	service.TokenCleanup(time.Hour, maxAge, creds)

	return a, nil
}

func makeLogger() {
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(logLevel())
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	cfg.EncoderConfig.EncodeTime = func(t time.Time, pae zapcore.PrimitiveArrayEncoder) {
		pae.AppendString(gray + t.Format("15:04:05.000") + reset)
	}
	cfg.EncoderConfig.EncodeCaller = func(ec zapcore.EntryCaller, pae zapcore.PrimitiveArrayEncoder) {
		pae.AppendString(gray + ec.TrimmedPath() + reset)
	}

	cfg.DisableStacktrace = true

	log, _ := cfg.Build()
	zap.ReplaceGlobals(log)
}

func logLevel() zapcore.Level {
	switch viper.GetString("app.log_level") {
	case "debug":
		return zapcore.DebugLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	case "fatal":
		return zapcore.FatalLevel
	default:
		return zapcore.InfoLevel
	}
}

func cacheFor(sec int) gin.HandlerFunc {
	return cache.CacheByRequestURI(responseCache, time.Second*time.Duration(sec))
}
