package achievement

import (
	"fmt"
	"strings"

	"kairu/internal/model"
)

// Evaluate fills in value, progress and unlocked for each catalog entry.
func Evaluate(catalog []model.Achievement, metrics Metrics) []model.Achievement {
	out := make([]model.Achievement, 0, len(catalog))
	for _, a := range catalog {
		a.Value = metrics.value(a.Metric)
		a.Progress = a.Value * 100 / a.Target
		if a.Progress > 100 {
			a.Progress = 100
		}
		a.Unlocked = a.Value >= a.Target
		out = append(out, a)
	}
	return out
}

type Summary struct {
	Unlocked       int    `json:"unlocked"`
	Total          int    `json:"total"`
	Points         int    `json:"points"`
	Rarest         string `json:"rarest"`
	CompletionRate int    `json:"completionRate"`
}

func Summarize(achievements []model.Achievement) Summary {
	s := Summary{Total: len(achievements)}
	for _, a := range achievements {
		if !a.Unlocked {
			continue
		}
		s.Unlocked++
		s.Points += a.Points
		if model.RarityRank(a.Rarity) > model.RarityRank(s.Rarest) {
			s.Rarest = a.Rarity
		}
	}
	if s.Total > 0 {
		s.CompletionRate = s.Unlocked * 100 / s.Total
	}
	return s
}

func badgeEmoji(rarity string) string {
	switch rarity {
	case model.RarityLegendary:
		return "🏆"
	case model.RarityEpic:
		return "🥇"
	case model.RarityRare:
		return "🥈"
	default:
		return "🥉"
	}
}

func categoryEmoji(category string) string {
	switch category {
	case "Focus Time":
		return "⏰"
	case "Streaks":
		return "🔥"
	case "Milestones":
		return "🎯"
	case "Habits":
		return "💪"
	case "Efficiency":
		return "⚡"
	default:
		return "🌟"
	}
}

// ShareText is the plain text posted when a user shares a badge. earned is
// shown as the earned date.
func ShareText(a model.Achievement, earned string) string {
	if !a.Unlocked {
		earned = "In Progress"
	}
	badge := badgeEmoji(a.Rarity)

	var b strings.Builder
	fmt.Fprintf(&b, "%s ACHIEVEMENT UNLOCKED! %s\n\n", badge, badge)
	fmt.Fprintf(&b, "🎖️ %s\n", a.Title)
	fmt.Fprintf(&b, "%s Category: %s\n", categoryEmoji(a.Category), a.Category)
	fmt.Fprintf(&b, "⭐ Rarity: %s\n", a.Rarity)
	fmt.Fprintf(&b, "📊 Progress: %d%%\n", a.Progress)
	fmt.Fprintf(&b, "📅 Earned: %s\n\n", earned)
	fmt.Fprintf(&b, "💬 \"%s\"\n\n", a.Description)
	b.WriteString("🚀 Achieved through dedication and focus!\n")
	b.WriteString("#ProductivityGoals #Achievement #Focus #Success")
	return b.String()
}

// Markdown renders achievements and their summary as a markdown document.
func Markdown(achievements []model.Achievement, summary Summary) string {
	var b strings.Builder
	b.WriteString("# Achievements\n\n")
	fmt.Fprintf(&b, "**%d/%d** unlocked · **%d** points · completion **%d%%**", summary.Unlocked, summary.Total, summary.Points, summary.CompletionRate)
	if summary.Rarest != "" {
		fmt.Fprintf(&b, " · rarest **%s**", summary.Rarest)
	}
	b.WriteString("\n\n| | Badge | Category | Rarity | Progress |\n|---|---|---|---|---|\n")
	for _, a := range achievements {
		mark := "🔒"
		if a.Unlocked {
			mark = badgeEmoji(a.Rarity)
		}
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %d%% |\n", mark, a.Title, a.Category, a.Rarity, a.Progress)
	}
	return b.String()
}
