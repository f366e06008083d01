package achievement

import (
	"sort"
	"time"

	"kairu/internal/model"
)

const (
	earlyStartHour = 6
	todoWindow     = 2 * time.Hour
)

// Metrics are the per-user values achievements are measured against.
type Metrics struct {
	MaxDailyFocusMinutes int `json:"maxDailyFocusMinutes"`
	BestStreakDays       int `json:"bestStreakDays"`
	CurrentStreakDays    int `json:"currentStreakDays"`
	FocusDays            int `json:"focusDays"`
	EarlyStartDays       int `json:"earlyStartDays"`
	TodosInWindow        int `json:"todosInWindow"`
}

func (m Metrics) value(metric string) int {
	switch metric {
	case MetricMaxDailyFocusMinutes:
		return m.MaxDailyFocusMinutes
	case MetricBestStreakDays:
		return m.BestStreakDays
	case MetricFocusDays:
		return m.FocusDays
	case MetricEarlyStartDays:
		return m.EarlyStartDays
	case MetricTodosInWindow:
		return m.TodosInWindow
	}
	return 0
}

// History is everything metrics are computed from.
type History struct {
	Sessions []model.FocusSession
	Daily    []model.DailyStats
	Todos    []model.TodoItem
	Today    string
	Location *time.Location
}

func ComputeMetrics(h History) Metrics {
	loc := h.Location
	if loc == nil {
		loc = time.Local
	}

	var m Metrics
	dates := make([]string, 0, len(h.Daily))
	for _, day := range h.Daily {
		if day.TotalFocusMinutes > m.MaxDailyFocusMinutes {
			m.MaxDailyFocusMinutes = day.TotalFocusMinutes
		}
		if day.SessionsCount > 0 {
			dates = append(dates, day.Date)
		}
	}
	m.CurrentStreakDays, m.BestStreakDays = Streaks(dates, h.Today)
	m.FocusDays = len(uniqueSorted(dates))

	early := make(map[string]bool)
	for _, session := range h.Sessions {
		if session.StartTime.In(loc).Hour() < earlyStartHour {
			early[session.Date] = true
		}
	}
	m.EarlyStartDays = len(early)

	m.TodosInWindow = maxInWindow(completionTimes(h.Todos), todoWindow)
	return m
}

// Streaks returns the current and best runs of consecutive days in dates
// (YYYY-MM-DD). The current run ends today, or yesterday when today has no
// entry yet.
func Streaks(dates []string, today string) (current, best int) {
	days := uniqueSorted(dates)
	if len(days) == 0 {
		return 0, 0
	}

	parsed := make([]time.Time, 0, len(days))
	for _, day := range days {
		t, err := time.Parse(model.DateLayout, day)
		if err != nil {
			continue
		}
		parsed = append(parsed, t)
	}
	if len(parsed) == 0 {
		return 0, 0
	}

	run := 1
	best = 1
	for i := 1; i < len(parsed); i++ {
		if parsed[i].Equal(parsed[i-1].AddDate(0, 0, 1)) {
			run++
		} else {
			run = 1
		}
		if run > best {
			best = run
		}
	}

	todayDate, err := time.Parse(model.DateLayout, today)
	if err != nil {
		return 0, best
	}
	last := parsed[len(parsed)-1]
	if !last.Equal(todayDate) && !last.Equal(todayDate.AddDate(0, 0, -1)) {
		return 0, best
	}
	current = 1
	for i := len(parsed) - 1; i > 0; i-- {
		if !parsed[i].Equal(parsed[i-1].AddDate(0, 0, 1)) {
			break
		}
		current++
	}
	return current, best
}

func uniqueSorted(values []string) []string {
	seen := make(map[string]bool, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	sort.Strings(out)
	return out
}

func completionTimes(todos []model.TodoItem) []time.Time {
	times := make([]time.Time, 0, len(todos))
	for _, todo := range todos {
		if todo.Completed && todo.CompletedAt != nil {
			times = append(times, *todo.CompletedAt)
		}
	}
	sort.Slice(times, func(i, j int) bool { return times[i].Before(times[j]) })
	return times
}

// maxInWindow counts the most sorted timestamps that fit inside any window
// of the given width.
func maxInWindow(times []time.Time, window time.Duration) int {
	best := 0
	start := 0
	for end := range times {
		for times[end].Sub(times[start]) > window {
			start++
		}
		if n := end - start + 1; n > best {
			best = n
		}
	}
	return best
}
