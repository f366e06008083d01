package main

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"kairu/internal/audio"
	"kairu/internal/timer"
	"kairu/internal/tui"
)

var (
	timerUserID  string
	timerPlayer  string
	timerMinutes int
)

var timerCmd = &cobra.Command{
	Use:   "timer",
	Short: "Run the focus timer in the terminal",
	Args:  cobra.NoArgs,
	RunE:  runTimer,
}

func init() {
	rootCmd.AddCommand(timerCmd)
	timerCmd.Flags().StringVar(&timerUserID, "user", "", "user id to record sessions for (default mcp.user_id)")
	timerCmd.Flags().StringVar(&timerPlayer, "player", "mpv", `audio player command, or "none" for silence`)
	timerCmd.Flags().IntVar(&timerMinutes, "minutes", 0, "initial focus length in minutes (default timer.default_minutes)")
}

func runTimer(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.close()

	userID := timerUserID
	if userID == "" {
		userID = a.cfg.MCP.UserID
	}
	minutes := timerMinutes
	if minutes <= 0 {
		minutes = a.cfg.Timer.DefaultMinutes
	}

	var backend audio.Backend = audio.SilentBackend{}
	if timerPlayer != "" && timerPlayer != "none" {
		backend = audio.NewExecBackend(timerPlayer)
	}
	player := audio.NewPlayer(backend)
	recorder := a.recorder()

	return tui.Run(tui.Options{
		Timer: timer.Options{
			DefaultMinutes: minutes,
			MinMinutes:     a.cfg.Timer.MinMinutes,
			MaxMinutes:     a.cfg.Timer.MaxMinutes,
			BreakSeconds:   a.cfg.Timer.BreakSeconds,
			AutoContinue:   a.cfg.Timer.AutoContinue,
		},
		Player:  player,
		Catalog: audio.DefaultCatalog(),
		Now:     a.cal.Now,
		Record: func(ctx context.Context, minutes int, end time.Time) error {
			musicType := ""
			if snap := player.Snapshot(); snap.Status == audio.StatusPlaying {
				musicType = snap.Track.ID
			}
			_, err := recorder.Record(ctx, userID, minutes, end, musicType)
			return err
		},
	})
}
