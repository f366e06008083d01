package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"kairu/internal/service"
)

type TodoHandler struct {
	todos *service.TodoService
}

type createTodoRequest struct {
	Title           string `json:"title"`
	Priority        string `json:"priority"`
	DueDate         string `json:"dueDate"`
	Category        string `json:"category"`
	EstimateMinutes int    `json:"estimateMinutes"`
}

type updateTodoRequest struct {
	Title           *string `json:"title"`
	Completed       *bool   `json:"completed"`
	Priority        *string `json:"priority"`
	DueDate         *string `json:"dueDate"`
	Category        *string `json:"category"`
	EstimateMinutes *int    `json:"estimateMinutes"`
}

func NewTodoHandler(todos *service.TodoService) *TodoHandler {
	return &TodoHandler{todos: todos}
}

func (h *TodoHandler) List(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	todos, apiErr := h.todos.List(c.Request.Context(), userID, c.Query("category"))
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"todos": todos})
}

func (h *TodoHandler) Create(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req createTodoRequest
	if !bindJSON(c, &req) {
		return
	}

	todo, apiErr := h.todos.Create(c.Request.Context(), userID, service.CreateTodoInput{
		Title:           req.Title,
		Priority:        req.Priority,
		DueDate:         req.DueDate,
		Category:        req.Category,
		EstimateMinutes: req.EstimateMinutes,
	})
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"todo": todo})
}

func (h *TodoHandler) Update(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req updateTodoRequest
	if !bindJSON(c, &req) {
		return
	}

	todo, apiErr := h.todos.Update(c.Request.Context(), userID, c.Param("id"), service.UpdateTodoInput{
		Title:           req.Title,
		Completed:       req.Completed,
		Priority:        req.Priority,
		DueDate:         req.DueDate,
		Category:        req.Category,
		EstimateMinutes: req.EstimateMinutes,
	})
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"todo": todo})
}

func (h *TodoHandler) Toggle(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	todo, apiErr := h.todos.Toggle(c.Request.Context(), userID, c.Param("id"))
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"todo": todo})
}

func (h *TodoHandler) Delete(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	if apiErr := h.todos.Delete(c.Request.Context(), userID, c.Param("id")); apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.Status(http.StatusNoContent)
}
