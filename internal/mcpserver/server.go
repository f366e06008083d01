// Package mcpserver exposes one user's reminders, sessions and todos as MCP
// tools over stdio.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"kairu/internal/service"
)

const (
	serverName    = "kairu"
	serverVersion = "1.0.0"
)

type Services struct {
	Reminders *service.ReminderService
	Stats     *service.StatsService
	Todos     *service.TodoService
}

// Server binds every tool call to a single user.
type Server struct {
	mcpServer *server.MCPServer
	userID    string
	services  Services
}

func NewServer(userID string, services Services) *Server {
	s := &Server{
		userID:   userID,
		services: services,
	}

	s.mcpServer = server.NewMCPServer(
		serverName,
		serverVersion,
		server.WithToolCapabilities(false),
	)

	s.registerTools()
	return s
}

func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio blocks until stdin closes.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(
		mcp.NewTool("add_reminder",
			mcp.WithDescription("Add a dated reminder; it fires within a minute of its time on that day"),
			mcp.WithString("title", mcp.Required(), mcp.Description("Reminder title")),
			mcp.WithString("date", mcp.Description("Date as YYYY-MM-DD (default: today)")),
			mcp.WithString("time", mcp.Description("Time of day as HH:MM (default: 09:00)")),
			mcp.WithString("description", mcp.Description("Optional description shown in the notification")),
		),
		s.handleAddReminder,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("list_reminders",
			mcp.WithDescription("List all reminders ordered by date and time"),
		),
		s.handleListReminders,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("remove_reminder",
			mcp.WithDescription("Delete a reminder permanently"),
			mcp.WithString("id", mcp.Required(), mcp.Description("Reminder ID")),
		),
		s.handleRemoveReminder,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("active_reminders",
			mcp.WithDescription("List the reminders due right now"),
		),
		s.handleActiveReminders,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("todays_sessions",
			mcp.WithDescription("List today's completed focus sessions with a total"),
		),
		s.handleTodaysSessions,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("add_todo",
			mcp.WithDescription("Add a todo item"),
			mcp.WithString("title", mcp.Required(), mcp.Description("Todo title")),
			mcp.WithString("priority", mcp.Description("Priority: low, medium, high (default: medium)")),
			mcp.WithString("category", mcp.Description("Category: daily, weekly, monthly (default: daily)")),
			mcp.WithString("due_date", mcp.Description("Optional due date as YYYY-MM-DD")),
			mcp.WithNumber("estimate_minutes", mcp.Description("Optional time estimate in minutes")),
		),
		s.handleAddTodo,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("list_todos",
			mcp.WithDescription("List todo items, newest first"),
			mcp.WithString("category", mcp.Description("Filter by category: daily, weekly, monthly, or empty for all")),
		),
		s.handleListTodos,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("toggle_todo",
			mcp.WithDescription("Flip a todo between completed and open"),
			mcp.WithString("id", mcp.Required(), mcp.Description("Todo ID")),
		),
		s.handleToggleTodo,
	)
}

func (s *Server) handleAddReminder(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	title := req.GetString("title", "")
	if title == "" {
		return mcp.NewToolResultError("title is required"), nil
	}

	added, apiErr := s.services.Reminders.Add(ctx, s.userID, service.AddReminderInput{
		Date:        req.GetString("date", ""),
		Time:        req.GetString("time", ""),
		Title:       title,
		Description: req.GetString("description", ""),
	})
	if apiErr != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to add reminder: %s", apiErr.Message)), nil
	}
	return jsonResult(added)
}

func (s *Server) handleListReminders(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	reminders, apiErr := s.services.Reminders.List(ctx, s.userID)
	if apiErr != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to list reminders: %s", apiErr.Message)), nil
	}
	if len(reminders) == 0 {
		return mcp.NewToolResultText("No reminders found."), nil
	}
	return jsonResult(reminders)
}

func (s *Server) handleRemoveReminder(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := req.GetString("id", "")
	if id == "" {
		return mcp.NewToolResultError("id is required"), nil
	}
	if apiErr := s.services.Reminders.Remove(ctx, s.userID, id); apiErr != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to remove reminder: %s", apiErr.Message)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Reminder %s removed.", id)), nil
}

func (s *Server) handleActiveReminders(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	reminders, apiErr := s.services.Reminders.Active(ctx, s.userID)
	if apiErr != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to scan reminders: %s", apiErr.Message)), nil
	}
	if len(reminders) == 0 {
		return mcp.NewToolResultText("No reminders due right now."), nil
	}
	return jsonResult(reminders)
}

func (s *Server) handleTodaysSessions(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessions, apiErr := s.services.Stats.TodaySessions(ctx, s.userID)
	if apiErr != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to list sessions: %s", apiErr.Message)), nil
	}
	today, apiErr := s.services.Stats.Today(ctx, s.userID)
	if apiErr != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to load stats: %s", apiErr.Message)), nil
	}
	if len(sessions) == 0 {
		return mcp.NewToolResultText("No focus sessions today."), nil
	}
	return jsonResult(map[string]interface{}{
		"sessions":  sessions,
		"count":     today.Sessions,
		"focusTime": today.FocusTime,
	})
}

func (s *Server) handleAddTodo(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	title := req.GetString("title", "")
	if title == "" {
		return mcp.NewToolResultError("title is required"), nil
	}
	estimate := req.GetFloat("estimate_minutes", 0)
	if estimate < 0 {
		return mcp.NewToolResultError("estimate_minutes must not be negative"), nil
	}

	todo, apiErr := s.services.Todos.Create(ctx, s.userID, service.CreateTodoInput{
		Title:           title,
		Priority:        req.GetString("priority", ""),
		DueDate:         req.GetString("due_date", ""),
		Category:        req.GetString("category", ""),
		EstimateMinutes: int(estimate),
	})
	if apiErr != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to add todo: %s", apiErr.Message)), nil
	}
	return jsonResult(todo)
}

func (s *Server) handleListTodos(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	todos, apiErr := s.services.Todos.List(ctx, s.userID, req.GetString("category", ""))
	if apiErr != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to list todos: %s", apiErr.Message)), nil
	}
	if len(todos) == 0 {
		return mcp.NewToolResultText("No todos found."), nil
	}
	return jsonResult(todos)
}

func (s *Server) handleToggleTodo(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := req.GetString("id", "")
	if id == "" {
		return mcp.NewToolResultError("id is required"), nil
	}
	todo, apiErr := s.services.Todos.Toggle(ctx, s.userID, id)
	if apiErr != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to toggle todo: %s", apiErr.Message)), nil
	}
	return jsonResult(todo)
}

func jsonResult(v interface{}) (*mcp.CallToolResult, error) {
	output, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(output)), nil
}
