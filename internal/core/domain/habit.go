package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrHabitNameEmpty     = errors.New("habit name cannot be empty")
	ErrHabitNameTooLong   = errors.New("habit name is too long (max 100 chars)")
	ErrHabitInvalidUserID = errors.New("invalid user id")
	ErrInvalidGoal        = errors.New("goal must be between 1 and 31 days")
	ErrHabitLimitReached  = errors.New("habit limit reached for the free plan")
)

const (
	DefaultEmoji = "✨"
	MinGoal      = 1
	MaxGoal      = 31
	MaxNameLen   = 100
)

type Habit struct {
	ID        string    `json:"id" db:"id"`
	UserID    string    `json:"user_id" db:"user_id"`
	Name      string    `json:"name" db:"name"`
	Emoji     string    `json:"emoji" db:"emoji"`
	Goal      int       `json:"goal" db:"goal"`
	SortOrder int       `json:"sort_order" db:"sort_order"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// HabitTemplate describes a habit to create, e.g. one of the first-run demo habits.
type HabitTemplate struct {
	Name  string `json:"name" yaml:"name"`
	Emoji string `json:"emoji" yaml:"emoji"`
	Goal  int    `json:"goal" yaml:"goal"`
}

// HabitPatch carries a partial overwrite of a habit. Nil fields are left untouched.
type HabitPatch struct {
	Name  *string
	Emoji *string
	Goal  *int
}

// ValidateHabitFields checks the fields a caller submits before creating or updating a habit.
func ValidateHabitFields(name string, goal int) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return ErrHabitNameEmpty
	}
	if len([]rune(trimmed)) > MaxNameLen {
		return ErrHabitNameTooLong
	}
	if goal < MinGoal || goal > MaxGoal {
		return ErrInvalidGoal
	}
	return nil
}

// NewHabit builds a habit for userID. Range checks on name and goal are the caller's job.
func NewHabit(userID string, tpl HabitTemplate, sortOrder int) (*Habit, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrHabitInvalidUserID
	}

	emoji := strings.TrimSpace(tpl.Emoji)
	if emoji == "" {
		emoji = DefaultEmoji
	}

	now := time.Now().UTC()

	return &Habit{
		ID:        uuid.NewString(),
		UserID:    userID,
		Name:      strings.TrimSpace(tpl.Name),
		Emoji:     emoji,
		Goal:      tpl.Goal,
		SortOrder: sortOrder,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Apply overwrites name, emoji and goal from p. SortOrder never changes here.
func (h *Habit) Apply(p HabitPatch) {
	if p.Name != nil {
		h.Name = strings.TrimSpace(*p.Name)
	}
	if p.Emoji != nil {
		emoji := strings.TrimSpace(*p.Emoji)
		if emoji == "" {
			emoji = DefaultEmoji
		}
		h.Emoji = emoji
	}
	if p.Goal != nil {
		h.Goal = *p.Goal
	}
	h.UpdatedAt = time.Now().UTC()
}
