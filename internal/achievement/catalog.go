// Package achievement evaluates the badge catalog against a user's focus
// history.
package achievement

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"kairu/internal/model"
)

const (
	MetricMaxDailyFocusMinutes = "max_daily_focus_minutes"
	MetricBestStreakDays       = "best_streak_days"
	MetricFocusDays            = "focus_days"
	MetricEarlyStartDays       = "early_start_days"
	MetricTodosInWindow        = "todos_in_window"
)

//go:embed catalog.yaml
var defaultCatalog []byte

type yamlEntry struct {
	ID          string `yaml:"id"`
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Category    string `yaml:"category"`
	Rarity      string `yaml:"rarity"`
	Points      int    `yaml:"points"`
	Metric      string `yaml:"metric"`
	Target      int    `yaml:"target"`
}

// ParseCatalog reads a YAML list of achievements.
func ParseCatalog(data []byte) ([]model.Achievement, error) {
	var entries []yamlEntry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse achievement yaml: %w", err)
	}

	catalog := make([]model.Achievement, 0, len(entries))
	seen := make(map[string]bool, len(entries))
	for _, entry := range entries {
		if entry.ID == "" || seen[entry.ID] {
			return nil, fmt.Errorf("achievement %q: missing or duplicate id", entry.ID)
		}
		if entry.Target <= 0 {
			return nil, fmt.Errorf("achievement %s: target must be positive", entry.ID)
		}
		if model.RarityRank(entry.Rarity) == 0 {
			return nil, fmt.Errorf("achievement %s: unknown rarity %q", entry.ID, entry.Rarity)
		}
		if !knownMetric(entry.Metric) {
			return nil, fmt.Errorf("achievement %s: unknown metric %q", entry.ID, entry.Metric)
		}
		seen[entry.ID] = true
		catalog = append(catalog, model.Achievement{
			ID:          entry.ID,
			Title:       entry.Title,
			Description: entry.Description,
			Category:    entry.Category,
			Rarity:      entry.Rarity,
			Points:      entry.Points,
			Metric:      entry.Metric,
			Target:      entry.Target,
		})
	}
	return catalog, nil
}

// DefaultCatalog returns the built-in achievements.
func DefaultCatalog() []model.Achievement {
	catalog, err := ParseCatalog(defaultCatalog)
	if err != nil {
		panic(err)
	}
	return catalog
}

func knownMetric(metric string) bool {
	switch metric {
	case MetricMaxDailyFocusMinutes, MetricBestStreakDays, MetricFocusDays, MetricEarlyStartDays, MetricTodosInWindow:
		return true
	}
	return false
}
