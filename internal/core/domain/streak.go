package domain

import (
	"errors"
	"slices"
	"time"
)

var (
	ErrStreakNotFound = errors.New("habit streak not found")
)

// Streak is derived from the full completion history of one habit and stored per (user, habit).
type Streak struct {
	UserID            string    `json:"user_id" db:"user_id"`
	HabitID           string    `json:"habit_id" db:"habit_id"`
	CurrentStreak     int       `json:"current_streak" db:"current_streak"`
	LongestStreak     int       `json:"longest_streak" db:"longest_streak"`
	LastCompletedDate *Date     `json:"last_completed_date" db:"last_completed_date"`
	UpdatedAt         time.Time `json:"updated_at" db:"updated_at"`
}

type StreakStats struct {
	Current       int
	Longest       int
	LastCompleted *Date
}

// ComputeStreak derives the current and longest run of consecutive days from dates.
// The current run counts back from today, or from yesterday when today is not done yet.
// Order and duplicates in dates do not matter.
func ComputeStreak(dates []Date, today Date) StreakStats {
	if len(dates) == 0 {
		return StreakStats{}
	}

	present := make(map[int64]struct{}, len(dates))
	days := make([]int64, 0, len(dates))
	for _, d := range dates {
		n := d.Ordinal()
		if _, seen := present[n]; seen {
			continue
		}
		present[n] = struct{}{}
		days = append(days, n)
	}

	slices.Sort(days)
	slices.Reverse(days)

	todayN := today.Ordinal()
	yesterdayN := todayN - 1

	_, todayDone := present[todayN]
	_, yesterdayDone := present[yesterdayN]

	current := 0
	if todayDone || yesterdayDone {
		check := yesterdayN
		if todayDone {
			check = todayN
		}
		for {
			if _, ok := present[check]; !ok {
				break
			}
			current++
			check--
		}
	}

	longest := 0
	run := 1
	for i := 0; i < len(days)-1; i++ {
		if days[i]-days[i+1] == 1 {
			run++
		} else {
			longest = max(longest, run)
			run = 1
		}
	}
	longest = max(longest, run, current)

	last := DateFromOrdinal(days[0])

	return StreakStats{
		Current:       current,
		Longest:       longest,
		LastCompleted: &last,
	}
}

func NewStreak(userID, habitID string, stats StreakStats) *Streak {
	return &Streak{
		UserID:            userID,
		HabitID:           habitID,
		CurrentStreak:     stats.Current,
		LongestStreak:     stats.Longest,
		LastCompletedDate: stats.LastCompleted,
		UpdatedAt:         time.Now().UTC(),
	}
}

func (s *Streak) Validate() error {
	if s.CurrentStreak < 0 || s.LongestStreak < 0 {
		return ErrMalformedRow
	}
	if s.LastCompletedDate != nil {
		if _, err := ParseDate(string(*s.LastCompletedDate)); err != nil {
			return ErrMalformedRow
		}
	}
	return nil
}
