package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/comitanigiacomo/kanso-habits/internal/core/domain"
)

type seedFile struct {
	Habits []domain.HabitTemplate `yaml:"habits"`
}

// DefaultSeedHabits are the demo habits a new user starts with.
func DefaultSeedHabits() []domain.HabitTemplate {
	return []domain.HabitTemplate{
		{Name: "Drink 2L Water", Emoji: "💧", Goal: 1},
		{Name: "Exercise 30 mins", Emoji: "🏃", Goal: 1},
		{Name: "Read 10 pages", Emoji: "📚", Goal: 1},
		{Name: "Meditate", Emoji: "🧘", Goal: 1},
	}
}

// LoadSeedHabits reads the demo habit list from a YAML file of the form
//
//	habits:
//	  - name: Meditate
//	    emoji: 🧘
//	    goal: 20
func LoadSeedHabits(path string) ([]domain.HabitTemplate, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file %s: %w", path, err)
	}
	return ParseSeedHabits(data)
}

func ParseSeedHabits(data []byte) ([]domain.HabitTemplate, error) {
	var f seedFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse seed file: %w", err)
	}
	for i, h := range f.Habits {
		if err := domain.ValidateHabitFields(h.Name, h.Goal); err != nil {
			return nil, fmt.Errorf("seed habit %d: %w", i, err)
		}
	}
	return f.Habits, nil
}
