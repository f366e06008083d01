package main

import (
	"github.com/spf13/cobra"

	"kairu/internal/mcpserver"
	"kairu/internal/service"
)

var mcpUserID string

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve reminders, sessions and todos as MCP tools over stdio",
	Args:  cobra.NoArgs,
	RunE:  runMCP,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
	mcpCmd.Flags().StringVar(&mcpUserID, "user", "", "user id to act as (default mcp.user_id)")
}

func runMCP(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.close()

	userID := mcpUserID
	if userID == "" {
		userID = a.cfg.MCP.UserID
	}

	s := mcpserver.NewServer(userID, mcpserver.Services{
		Reminders: a.reminders(),
		Stats:     service.NewStatsService(a.store, a.recorder(), a.cal),
		Todos:     service.NewTodoService(a.store, a.cal),
	})
	return s.ServeStdio()
}
