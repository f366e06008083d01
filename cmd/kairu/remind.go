package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"kairu/internal/notify"
	"kairu/internal/reminder"
	"kairu/internal/ticker"
)

var remindUserID string

var remindCmd = &cobra.Command{
	Use:   "remind",
	Short: "Watch one user's reminders and ring the terminal when they are due",
	Args:  cobra.NoArgs,
	RunE:  runRemind,
}

func init() {
	rootCmd.AddCommand(remindCmd)
	remindCmd.Flags().StringVar(&remindUserID, "user", "", "user id to watch (default mcp.user_id)")
}

func runRemind(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.close()

	userID := remindUserID
	if userID == "" {
		userID = a.cfg.MCP.UserID
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ticks := ticker.NewService(ticker.SystemClock)
	defer ticks.Close()

	terminal := notify.NewTerminal(cmd.OutOrStdout(), notify.PermissionGranted)
	scheduler := reminder.NewScheduler(a.reminders().UserSource(userID), terminal, ticks, reminder.Options{
		Interval:  a.cfg.ScanInterval(),
		Tolerance: a.cfg.Reminders.ToleranceMinutes,
		Location:  a.cal.Location,
	})

	log.Printf("watching reminders for %s every %s", userID, a.cfg.ScanInterval())
	scheduler.Start(ctx)
	<-ctx.Done()
	scheduler.Stop()
	return nil
}
