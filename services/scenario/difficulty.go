package scenario

import (
	"strings"

	"reservodojo/models"
)

// Difficulty trims what a scenario may contain.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// ParseDifficulty maps user input to a level; anything unknown is hard.
func ParseDifficulty(s string) Difficulty {
	switch d := Difficulty(strings.ToLower(strings.TrimSpace(s))); d {
	case DifficultyEasy, DifficultyMedium:
		return d
	}
	return DifficultyHard
}

// ApplyDifficulty returns a copy of cfg adjusted for the level. Medium drops
// extras and breakfast; easy also drops follow-ups.
func ApplyDifficulty(cfg models.TrainerConfig, level Difficulty) models.TrainerConfig {
	out := cfg.Clone()
	if level == DifficultyMedium || level == DifficultyEasy {
		out.MaxServices = 0
		out.ExtraServices = []string{}
		out.BreakfastPolicy.Enabled = false
		out.BreakfastTypes = []string{}
		for i := range out.RoomCategories {
			out.RoomCategories[i].CategoryExtras = models.CategoryExtras{}
		}
	}
	if level == DifficultyEasy {
		out.FollowUpProbability = 0
		out.FollowUpTasks = []string{}
	}
	return out
}
