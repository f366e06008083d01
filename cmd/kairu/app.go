package main

import (
	"fmt"
	"log"
	"time"

	"kairu/internal/config"
	"kairu/internal/db"
	"kairu/internal/repository"
	"kairu/internal/service"
)

// app holds what every command needs: validated config, the store and the
// calendar in the configured timezone.
type app struct {
	cfg   *config.Config
	store repository.Store
	cal   service.Calendar
	close func() error
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func openApp() (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	a := &app{
		cfg:   cfg,
		cal:   service.NewCalendar(time.Now, loc),
		close: func() error { return nil },
	}

	if cfg.Demo {
		log.Println("demo mode: data is kept in memory and lost on exit")
		a.store = repository.NewMemoryStore()
		return a, nil
	}

	database, err := db.Open(cfg.DB.Driver, cfg.DB.Path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.RunMigrations(database, cfg.DB.MigrationsDir); err != nil {
		_ = database.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	a.store = repository.NewSQLStore(database)
	a.close = database.Close
	return a, nil
}

func (a *app) timerSettings() service.TimerSettings {
	return service.TimerSettings{
		DefaultMinutes: a.cfg.Timer.DefaultMinutes,
		MinMinutes:     a.cfg.Timer.MinMinutes,
		MaxMinutes:     a.cfg.Timer.MaxMinutes,
		BreakSeconds:   a.cfg.Timer.BreakSeconds,
		AutoContinue:   a.cfg.Timer.AutoContinue,
	}
}

func (a *app) recorder() *service.FocusRecorder {
	return service.NewFocusRecorder(a.store, a.store, a.cal)
}

func (a *app) reminders() *service.ReminderService {
	return service.NewReminderService(a.store, a.cal, a.cfg.Reminders.ToleranceMinutes)
}
