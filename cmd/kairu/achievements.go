package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"kairu/internal/achievement"
	"kairu/internal/service"
)

const defaultRenderWidth = 80

var (
	achievementsUserID string
	achievementsShare  string
)

var achievementsCmd = &cobra.Command{
	Use:   "achievements",
	Short: "Show achievement progress, or share one achievement",
	Args:  cobra.NoArgs,
	RunE:  runAchievements,
}

func init() {
	rootCmd.AddCommand(achievementsCmd)
	achievementsCmd.Flags().StringVar(&achievementsUserID, "user", "", "user id (default mcp.user_id)")
	achievementsCmd.Flags().StringVar(&achievementsShare, "share", "", "print the share text for this achievement id")
}

func runAchievements(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.close()

	userID := achievementsUserID
	if userID == "" {
		userID = a.cfg.MCP.UserID
	}
	svc := service.NewAchievementService(a.store, nil, a.cal)
	ctx := cmd.Context()

	if achievementsShare != "" {
		text, apiErr := svc.Share(ctx, userID, achievementsShare)
		if apiErr != nil {
			return apiErr
		}
		_, err := fmt.Fprintln(cmd.OutOrStdout(), text)
		return err
	}

	view, apiErr := svc.List(ctx, userID)
	if apiErr != nil {
		return apiErr
	}
	doc := achievement.Markdown(view.Achievements, view.Summary)

	out := cmd.OutOrStdout()
	fd := int(os.Stdout.Fd())
	if out != os.Stdout || !term.IsTerminal(fd) {
		_, err := fmt.Fprint(out, doc)
		return err
	}

	width := defaultRenderWidth
	if w, _, err := term.GetSize(fd); err == nil && w > 0 {
		width = w
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return fmt.Errorf("create markdown renderer: %w", err)
	}
	rendered, err := renderer.Render(doc)
	if err != nil {
		return fmt.Errorf("render achievements: %w", err)
	}
	_, err = fmt.Fprint(out, rendered)
	return err
}
