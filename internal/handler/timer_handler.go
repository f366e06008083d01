package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"kairu/internal/service"
)

type TimerHandler struct {
	timers *service.TimerService
	stats  *service.StatsService
}

type startTimerRequest struct {
	MusicType string `json:"musicType"`
}

type setDurationRequest struct {
	Minutes int `json:"minutes"`
}

type recordSessionRequest struct {
	Duration  int        `json:"duration"`
	EndTime   *time.Time `json:"endTime"`
	MusicType string     `json:"musicType"`
}

func NewTimerHandler(timers *service.TimerService, stats *service.StatsService) *TimerHandler {
	return &TimerHandler{timers: timers, stats: stats}
}

func (h *TimerHandler) GetTimer(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"timer": h.timers.State(userID)})
}

func (h *TimerHandler) Start(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req startTimerRequest
	if c.Request.ContentLength > 0 && !bindJSON(c, &req) {
		return
	}
	c.JSON(http.StatusOK, gin.H{"timer": h.timers.Start(userID, req.MusicType)})
}

func (h *TimerHandler) Pause(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"timer": h.timers.Pause(userID)})
}

func (h *TimerHandler) Reset(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"timer": h.timers.Reset(userID)})
}

func (h *TimerHandler) SetDuration(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req setDurationRequest
	if !bindJSON(c, &req) {
		return
	}

	view, apiErr := h.timers.SetDuration(userID, req.Minutes)
	if apiErr != nil {
		writeError(c, apiErr.WithDetails(gin.H{"timer": view}))
		return
	}
	c.JSON(http.StatusOK, gin.H{"timer": view})
}

func (h *TimerHandler) RecordSession(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req recordSessionRequest
	if !bindJSON(c, &req) {
		return
	}

	session, apiErr := h.stats.Record(c.Request.Context(), userID, service.RecordSessionInput{
		Duration:  req.Duration,
		EndTime:   req.EndTime,
		MusicType: req.MusicType,
	})
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"session": session})
}

func (h *TimerHandler) TodaySessions(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	sessions, apiErr := h.stats.TodaySessions(c.Request.Context(), userID)
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"sessions": sessions})
}

func (h *TimerHandler) TodayStats(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	stats, apiErr := h.stats.Today(c.Request.Context(), userID)
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"stats": stats})
}

func (h *TimerHandler) Summary(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	summary, apiErr := h.stats.Summary(c.Request.Context(), userID)
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"summary": summary})
}
