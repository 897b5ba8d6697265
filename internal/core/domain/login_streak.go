package domain

import (
	"errors"
	"time"
)

var (
	ErrLoginStreakNotFound = errors.New("login streak not found")
)

var LoginMilestones = []int{7, 30, 100}

type LoginStreak struct {
	UserID        string    `json:"user_id" db:"user_id"`
	CurrentStreak int       `json:"current_streak" db:"current_streak"`
	LongestStreak int       `json:"longest_streak" db:"longest_streak"`
	LastLoginDate Date      `json:"last_login_date" db:"last_login_date"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}

func NewLoginStreak(userID string, today Date) *LoginStreak {
	return &LoginStreak{
		UserID:        userID,
		CurrentStreak: 1,
		LongestStreak: 1,
		LastLoginDate: today,
		UpdatedAt:     time.Now().UTC(),
	}
}

// RecordLogin advances the streak for a login on today. It returns whether the streak
// changed and the milestone crossed by this login, or 0.
func (l *LoginStreak) RecordLogin(today Date) (bool, int) {
	diff := today.Ordinal() - l.LastLoginDate.Ordinal()

	switch diff {
	case 0:
		return false, 0
	case 1:
		old := l.CurrentStreak
		l.CurrentStreak++
		l.LongestStreak = max(l.LongestStreak, l.CurrentStreak)
		l.LastLoginDate = today
		l.UpdatedAt = time.Now().UTC()
		return true, crossedMilestone(l.CurrentStreak, old)
	default:
		l.CurrentStreak = 1
		l.LastLoginDate = today
		l.UpdatedAt = time.Now().UTC()
		return true, 0
	}
}

func crossedMilestone(newStreak, oldStreak int) int {
	for _, m := range LoginMilestones {
		if newStreak >= m && oldStreak < m {
			return m
		}
	}
	return 0
}
