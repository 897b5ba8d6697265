package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidCompletion = errors.New("invalid habit completion data")
	ErrSessionClosed     = errors.New("session has ended")
)

// Completion records that a habit was done on one calendar day.
// (UserID, HabitID, CompletedDate) is unique.
type Completion struct {
	ID            string    `json:"id" db:"id"`
	UserID        string    `json:"user_id" db:"user_id"`
	HabitID       string    `json:"habit_id" db:"habit_id"`
	CompletedDate Date      `json:"completed_date" db:"completed_date"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}

func NewCompletion(userID, habitID string, date Date) *Completion {
	return &Completion{
		ID:            uuid.NewString(),
		UserID:        userID,
		HabitID:       habitID,
		CompletedDate: date,
		CreatedAt:     time.Now().UTC(),
	}
}

// Validate is checked by the repositories before a completion is written.
func (c *Completion) Validate() error {
	if strings.TrimSpace(c.HabitID) == "" || strings.TrimSpace(c.UserID) == "" {
		return ErrInvalidCompletion
	}
	if _, err := ParseDate(string(c.CompletedDate)); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidCompletion, err)
	}
	return nil
}
