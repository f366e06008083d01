package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "kairu/internal/errors"
	"kairu/internal/service"
)

type ProfileHandler struct {
	profiles  *service.ProfileService
	reminders *service.ReminderService
}

type updateProfileRequest struct {
	Name         *string `json:"name"`
	MaxWorkHours *int    `json:"maxWorkHours"`
	PreparingFor *string `json:"preparingFor"`
}

type addReminderRequest struct {
	Date        string `json:"date"`
	Time        string `json:"time"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

type setReminderActiveRequest struct {
	IsActive *bool `json:"isActive"`
}

func NewProfileHandler(profiles *service.ProfileService, reminders *service.ReminderService) *ProfileHandler {
	return &ProfileHandler{profiles: profiles, reminders: reminders}
}

func (h *ProfileHandler) GetProfile(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	profile, apiErr := h.profiles.Get(c.Request.Context(), userID)
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"profile": profile})
}

func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req updateProfileRequest
	if !bindJSON(c, &req) {
		return
	}

	profile, apiErr := h.profiles.Update(c.Request.Context(), userID, service.UpdateProfileInput{
		Name:         req.Name,
		MaxWorkHours: req.MaxWorkHours,
		PreparingFor: req.PreparingFor,
	})
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"profile": profile})
}

func (h *ProfileHandler) ListReminders(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	reminders, apiErr := h.reminders.List(c.Request.Context(), userID)
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reminders": reminders})
}

func (h *ProfileHandler) ActiveReminders(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	reminders, apiErr := h.reminders.Active(c.Request.Context(), userID)
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reminders": reminders})
}

func (h *ProfileHandler) AddReminder(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req addReminderRequest
	if !bindJSON(c, &req) {
		return
	}

	reminder, apiErr := h.reminders.Add(c.Request.Context(), userID, service.AddReminderInput{
		Date:        req.Date,
		Time:        req.Time,
		Title:       req.Title,
		Description: req.Description,
	})
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"reminder": reminder})
}

func (h *ProfileHandler) SetReminderActive(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req setReminderActiveRequest
	if !bindJSON(c, &req) {
		return
	}
	if req.IsActive == nil {
		writeError(c, apperrors.BadRequest("invalid_is_active", "isActive is required"))
		return
	}

	reminder, apiErr := h.reminders.SetActive(c.Request.Context(), userID, c.Param("id"), *req.IsActive)
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reminder": reminder})
}

func (h *ProfileHandler) RemoveReminder(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	if apiErr := h.reminders.Remove(c.Request.Context(), userID, c.Param("id")); apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.Status(http.StatusNoContent)
}
