package achievement

import (
	"strings"
	"testing"
	"time"

	"kairu/internal/model"
)

func TestDefaultCatalog(t *testing.T) {
	catalog := DefaultCatalog()
	if len(catalog) != 6 {
		t.Fatalf("expected 6 achievements, got %d", len(catalog))
	}
	if catalog[0].Title != "4 Hour Focus Master" || catalog[0].Rarity != model.RarityEpic || catalog[0].Target != 240 {
		t.Fatalf("unexpected first entry: %+v", catalog[0])
	}
}

func TestParseCatalogValidates(t *testing.T) {
	bad := []string{
		"- {id: a, rarity: Epic, metric: focus_days, target: 0}",
		"- {id: a, rarity: Mythic, metric: focus_days, target: 1}",
		"- {id: a, rarity: Epic, metric: coffee_cups, target: 1}",
		"- {id: a, rarity: Epic, metric: focus_days, target: 1}\n- {id: a, rarity: Epic, metric: focus_days, target: 1}",
		"not: [a list",
	}
	for _, data := range bad {
		if _, err := ParseCatalog([]byte(data)); err == nil {
			t.Fatalf("expected error for %q", data)
		}
	}
}

func TestStreaks(t *testing.T) {
	tests := []struct {
		name    string
		dates   []string
		today   string
		current int
		best    int
	}{
		{name: "empty", today: "2025-07-25"},
		{name: "today only", dates: []string{"2025-07-25"}, today: "2025-07-25", current: 1, best: 1},
		{name: "through yesterday", dates: []string{"2025-07-22", "2025-07-23", "2025-07-24"}, today: "2025-07-25", current: 3, best: 3},
		{name: "broken", dates: []string{"2025-07-20", "2025-07-21", "2025-07-22", "2025-07-23", "2025-07-25"}, today: "2025-07-25", current: 1, best: 4},
		{name: "stale", dates: []string{"2025-07-01", "2025-07-02"}, today: "2025-07-25", current: 0, best: 2},
		{name: "duplicates and month edge", dates: []string{"2025-07-31", "2025-08-01", "2025-08-01", "2025-07-30"}, today: "2025-08-01", current: 3, best: 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			current, best := Streaks(tt.dates, tt.today)
			if current != tt.current || best != tt.best {
				t.Fatalf("got current=%d best=%d, want %d/%d", current, best, tt.current, tt.best)
			}
		})
	}
}

func TestComputeMetricsAndEvaluate(t *testing.T) {
	loc := time.UTC
	session := func(date string, hour int) model.FocusSession {
		day, _ := time.Parse(model.DateLayout, date)
		start := day.Add(time.Duration(hour) * time.Hour)
		return model.FocusSession{Date: date, Duration: 25, StartTime: start, EndTime: start.Add(25 * time.Minute)}
	}
	completed := func(at time.Time) model.TodoItem {
		return model.TodoItem{Completed: true, CompletedAt: &at}
	}
	base := time.Date(2025, 7, 25, 10, 0, 0, 0, loc)

	history := History{
		Daily: []model.DailyStats{
			{Date: "2025-07-23", SessionsCount: 2, TotalFocusMinutes: 50},
			{Date: "2025-07-24", SessionsCount: 10, TotalFocusMinutes: 250},
			{Date: "2025-07-25", SessionsCount: 1, TotalFocusMinutes: 25},
		},
		Sessions: []model.FocusSession{
			session("2025-07-23", 5),
			session("2025-07-23", 5),
			session("2025-07-24", 7),
			session("2025-07-25", 4),
		},
		Todos: []model.TodoItem{
			completed(base),
			completed(base.Add(30 * time.Minute)),
			completed(base.Add(2 * time.Hour)),
			completed(base.Add(5 * time.Hour)),
			{Completed: false},
		},
		Today:    "2025-07-25",
		Location: loc,
	}

	m := ComputeMetrics(history)
	want := Metrics{
		MaxDailyFocusMinutes: 250,
		BestStreakDays:       3,
		CurrentStreakDays:    3,
		FocusDays:            3,
		EarlyStartDays:       2,
		TodosInWindow:        3,
	}
	if m != want {
		t.Fatalf("got %+v, want %+v", m, want)
	}

	evaluated := Evaluate(DefaultCatalog(), m)
	byID := make(map[string]model.Achievement)
	for _, a := range evaluated {
		byID[a.ID] = a
	}
	if a := byID["focus-master-4h"]; !a.Unlocked || a.Progress != 100 {
		t.Fatalf("expected focus master unlocked, got %+v", a)
	}
	if a := byID["streak-3d"]; !a.Unlocked {
		t.Fatalf("expected 3 day streak unlocked, got %+v", a)
	}
	if a := byID["warrior-7d"]; a.Unlocked || a.Progress != 42 {
		t.Fatalf("expected 7 day warrior at 42%%, got %+v", a)
	}
	if a := byID["early-bird"]; a.Unlocked || a.Progress != 40 {
		t.Fatalf("expected early bird at 40%%, got %+v", a)
	}

	summary := Summarize(evaluated)
	if summary.Unlocked != 2 || summary.Total != 6 || summary.Points != 900 || summary.Rarest != model.RarityEpic || summary.CompletionRate != 33 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
}

func TestShareText(t *testing.T) {
	a := model.Achievement{
		Title:       "3 Day Streak",
		Description: "Maintained focus streak for 3 consecutive days",
		Category:    "Streaks",
		Rarity:      model.RarityRare,
		Progress:    100,
		Unlocked:    true,
	}
	text := ShareText(a, "2025-07-23")
	for _, want := range []string{
		"🥈 ACHIEVEMENT UNLOCKED! 🥈",
		"🎖️ 3 Day Streak",
		"🔥 Category: Streaks",
		"📊 Progress: 100%",
		"📅 Earned: 2025-07-23",
		"#ProductivityGoals",
	} {
		if !strings.Contains(text, want) {
			t.Fatalf("share text missing %q:\n%s", want, text)
		}
	}

	a.Unlocked = false
	if !strings.Contains(ShareText(a, "2025-07-23"), "📅 Earned: In Progress") {
		t.Fatal("expected locked achievement to show In Progress")
	}
}

func TestMarkdown(t *testing.T) {
	evaluated := Evaluate(DefaultCatalog(), Metrics{MaxDailyFocusMinutes: 300})
	md := Markdown(evaluated, Summarize(evaluated))
	if !strings.Contains(md, "**1/6** unlocked") || !strings.Contains(md, "| 🥇 | 4 Hour Focus Master |") {
		t.Fatalf("unexpected markdown:\n%s", md)
	}
}
