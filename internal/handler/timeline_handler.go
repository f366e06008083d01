package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "kairu/internal/errors"
	"kairu/internal/service"
)

type TimelineHandler struct {
	timeline *service.TimelineService
}

type createTimelineRequest struct {
	Title        string    `json:"title"`
	StartTime    time.Time `json:"startTime"`
	EndTime      time.Time `json:"endTime"`
	Tag          string    `json:"tag"`
	Category     string    `json:"category"`
	Productivity int       `json:"productivity"`
}

func NewTimelineHandler(timeline *service.TimelineService) *TimelineHandler {
	return &TimelineHandler{timeline: timeline}
}

func (h *TimelineHandler) List(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			writeError(c, apperrors.BadRequest("invalid_limit", "limit must be a non-negative integer"))
			return
		}
		limit = parsed
	}

	entries, apiErr := h.timeline.List(c.Request.Context(), userID, limit)
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"entries": entries})
}

func (h *TimelineHandler) Create(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req createTimelineRequest
	if !bindJSON(c, &req) {
		return
	}

	entry, apiErr := h.timeline.Create(c.Request.Context(), userID, service.CreateTimelineInput{
		Title:        req.Title,
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
		Tag:          req.Tag,
		Category:     req.Category,
		Productivity: req.Productivity,
	})
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"entry": entry})
}
