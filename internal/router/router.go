package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"kairu/internal/handler"
	"kairu/internal/middleware"
)

type Handlers struct {
	Auth         *handler.AuthHandler
	Profile      *handler.ProfileHandler
	Timer        *handler.TimerHandler
	Todo         *handler.TodoHandler
	Timeline     *handler.TimelineHandler
	Achievement  *handler.AchievementHandler
	Notification *handler.NotificationHandler
	Audio        *handler.AudioHandler
}

func New(tokens middleware.TokenParser, h Handlers, corsOrigins []string) *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Logger(), gin.Recovery(), middleware.CORS(corsOrigins))

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := engine.Group("/api")
	auth := api.Group("/auth")
	auth.POST("/register", h.Auth.Register)
	auth.POST("/login", h.Auth.Login)

	api.GET("/audio/tracks", h.Audio.Tracks)

	protected := api.Group("")
	protected.Use(middleware.Auth(tokens))

	protected.GET("/profile", h.Profile.GetProfile)
	protected.PUT("/profile", h.Profile.UpdateProfile)

	reminders := protected.Group("/reminders")
	reminders.GET("", h.Profile.ListReminders)
	reminders.POST("", h.Profile.AddReminder)
	reminders.GET("/active", h.Profile.ActiveReminders)
	reminders.PATCH("/:id", h.Profile.SetReminderActive)
	reminders.DELETE("/:id", h.Profile.RemoveReminder)

	timer := protected.Group("/timer")
	timer.GET("", h.Timer.GetTimer)
	timer.POST("/start", h.Timer.Start)
	timer.POST("/pause", h.Timer.Pause)
	timer.POST("/reset", h.Timer.Reset)
	timer.PUT("/duration", h.Timer.SetDuration)

	protected.POST("/sessions", h.Timer.RecordSession)
	protected.GET("/sessions/today", h.Timer.TodaySessions)
	protected.GET("/stats/today", h.Timer.TodayStats)
	protected.GET("/stats/summary", h.Timer.Summary)

	todos := protected.Group("/todos")
	todos.GET("", h.Todo.List)
	todos.POST("", h.Todo.Create)
	todos.PATCH("/:id", h.Todo.Update)
	todos.POST("/:id/toggle", h.Todo.Toggle)
	todos.DELETE("/:id", h.Todo.Delete)

	protected.GET("/timeline", h.Timeline.List)
	protected.POST("/timeline", h.Timeline.Create)

	protected.GET("/achievements", h.Achievement.List)
	protected.GET("/achievements/:id/share", h.Achievement.Share)

	notifications := protected.Group("/notifications")
	notifications.GET("", h.Notification.List)
	notifications.GET("/stream", h.Notification.Stream)
	notifications.GET("/permission", h.Notification.GetPermission)
	notifications.PUT("/permission", h.Notification.SetPermission)

	return engine
}
