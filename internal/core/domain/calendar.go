package domain

import (
	"math"
	"time"
)

var monthNames = [12]string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

var dayNames = [7]string{"Su", "Mo", "Tu", "We", "Th", "Fr", "Sa"}

// DaysInMonth returns the number of days of a zero-indexed month.
func DaysInMonth(year, month int) int {
	return time.Date(year, time.Month(month+2), 0, 0, 0, 0, 0, time.UTC).Day()
}

func MonthName(month int) string {
	if month < 0 || month >= len(monthNames) {
		return ""
	}
	return monthNames[month]
}

// DayName returns the two-letter abbreviation of a weekday, 0 being Sunday.
func DayName(weekday int) string {
	if weekday < 0 || weekday >= len(dayNames) {
		return ""
	}
	return dayNames[weekday]
}

// Weekday returns the weekday (0 = Sunday) of a day in the given month.
func Weekday(year, month, day int) int {
	return int(time.Date(year, time.Month(month+1), day, 0, 0, 0, 0, time.UTC).Weekday())
}

func WeekOfMonth(day int) int {
	return (day + 6) / 7
}

// MonthCompletions maps habit id to the days of one month it was completed on.
type MonthCompletions map[string]map[int]bool

func (m MonthCompletions) IsCompleted(habitID string, day int) bool {
	return m[habitID][day]
}

func (m MonthCompletions) Set(habitID string, day int) {
	days, ok := m[habitID]
	if !ok {
		days = make(map[int]bool)
		m[habitID] = days
	}
	days[day] = true
}

func (m MonthCompletions) Clear(habitID string, day int) {
	days, ok := m[habitID]
	if !ok {
		return
	}
	delete(days, day)
}

func (m MonthCompletions) Clone() MonthCompletions {
	out := make(MonthCompletions, len(m))
	for habitID, days := range m {
		cp := make(map[int]bool, len(days))
		for d, v := range days {
			cp[d] = v
		}
		out[habitID] = cp
	}
	return out
}

func percent(part, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(total) * 100))
}

// DailyProgress is the share of habits completed on day, as a rounded percentage.
func DailyProgress(day int, habits []*Habit, completions MonthCompletions) int {
	completed := 0
	for _, h := range habits {
		if completions.IsCompleted(h.ID, day) {
			completed++
		}
	}
	return percent(completed, len(habits))
}

func CompletedCount(habitID string, completions MonthCompletions) int {
	count := 0
	for _, done := range completions[habitID] {
		if done {
			count++
		}
	}
	return count
}

// HabitProgress is the share of the month's days a habit was completed on.
func HabitProgress(habitID string, completions MonthCompletions, daysInMonth int) int {
	return percent(CompletedCount(habitID, completions), daysInMonth)
}
