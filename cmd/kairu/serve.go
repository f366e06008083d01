package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"kairu/internal/audio"
	"kairu/internal/handler"
	"kairu/internal/notify"
	"kairu/internal/reminder"
	"kairu/internal/router"
	"kairu/internal/service"
	"kairu/internal/ticker"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API and the reminder scheduler",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ticks := ticker.NewService(ticker.SystemClock)
	defer ticks.Close()

	inbox := notify.NewInbox(notify.DefaultInboxSize, notify.PermissionDefault)
	recorder := a.recorder()
	reminders := a.reminders()

	authService := service.NewAuthService(a.store, a.cfg.Auth.JWTSecret, a.cfg.TokenTTL())
	timerService := service.NewTimerService(ticks, a.timerSettings(), recorder, inbox, a.cal)
	defer timerService.Close()

	scheduler := reminder.NewScheduler(reminders.DueSource(), inbox, ticks, reminder.Options{
		Interval:  a.cfg.ScanInterval(),
		Tolerance: a.cfg.Reminders.ToleranceMinutes,
		Location:  a.cal.Location,
	})
	scheduler.Start(ctx)
	defer scheduler.Stop()

	engine := router.New(authService, router.Handlers{
		Auth:         handler.NewAuthHandler(authService),
		Profile:      handler.NewProfileHandler(service.NewProfileService(a.store, a.cal), reminders),
		Timer:        handler.NewTimerHandler(timerService, service.NewStatsService(a.store, recorder, a.cal)),
		Todo:         handler.NewTodoHandler(service.NewTodoService(a.store, a.cal)),
		Timeline:     handler.NewTimelineHandler(service.NewTimelineService(a.store, a.cal)),
		Achievement:  handler.NewAchievementHandler(service.NewAchievementService(a.store, nil, a.cal)),
		Notification: handler.NewNotificationHandler(inbox),
		Audio:        handler.NewAudioHandler(audio.DefaultCatalog()),
	}, a.cfg.CORS.Origins)

	srv := &http.Server{
		Addr:              ":" + a.cfg.Port,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("kairu listening on :%s", a.cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("run server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Println("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown server: %w", err)
	}
	return nil
}
