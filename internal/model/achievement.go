package model

const (
	RarityCommon    = "Common"
	RarityRare      = "Rare"
	RarityEpic      = "Epic"
	RarityLegendary = "Legendary"
)

// Achievement is a catalog entry evaluated against a user's history.
type Achievement struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Rarity      string `json:"rarity"`
	Points      int    `json:"points"`
	Metric      string `json:"metric"`
	Target      int    `json:"target"`
	Value       int    `json:"value"`
	Progress    int    `json:"progress"`
	Unlocked    bool   `json:"unlocked"`
}

// RarityRank orders rarities from most common to rarest.
func RarityRank(rarity string) int {
	switch rarity {
	case RarityCommon:
		return 1
	case RarityRare:
		return 2
	case RarityEpic:
		return 3
	case RarityLegendary:
		return 4
	default:
		return 0
	}
}
