package domain

type MonthlyStats struct {
	Year        int         `json:"year"`
	Month       int         `json:"month"`
	MonthName   string      `json:"month_name"`
	DaysInMonth int         `json:"days_in_month"`
	TotalHabits int         `json:"total_habits"`
	Days        []DayStat   `json:"days"`
	HabitStats  []HabitStat `json:"habits"`
	OverallRate int         `json:"overall_completion_rate"`
}

type DayStat struct {
	Day      int    `json:"day"`
	Date     Date   `json:"date"`
	DayName  string `json:"day_name"`
	Week     int    `json:"week"`
	Progress int    `json:"progress"`
}

type HabitStat struct {
	HabitID       string `json:"habit_id"`
	Name          string `json:"name"`
	Emoji         string `json:"emoji"`
	Goal          int    `json:"goal"`
	DaysCompleted int    `json:"days_completed"`
	Progress      int    `json:"progress"`
	GoalReached   bool   `json:"goal_reached"`
	CurrentStreak int    `json:"current_streak"`
	LongestStreak int    `json:"longest_streak"`
	CompletedDays []int  `json:"completed_days"`
}

// BuildMonthlyStats summarizes one month of completions for the given habits.
// streaks is keyed by habit id and may miss entries.
func BuildMonthlyStats(key MonthKey, habits []*Habit, completions MonthCompletions, streaks map[string]*Streak) *MonthlyStats {
	days := key.Days()

	stats := &MonthlyStats{
		Year:        key.Year,
		Month:       key.Month,
		MonthName:   MonthName(key.Month),
		DaysInMonth: days,
		TotalHabits: len(habits),
		Days:        make([]DayStat, 0, days),
		HabitStats:  make([]HabitStat, 0, len(habits)),
	}

	for day := 1; day <= days; day++ {
		stats.Days = append(stats.Days, DayStat{
			Day:      day,
			Date:     NewDate(key.Year, key.Month, day),
			DayName:  DayName(Weekday(key.Year, key.Month, day)),
			Week:     WeekOfMonth(day),
			Progress: DailyProgress(day, habits, completions),
		})
	}

	totalDone := 0
	for _, h := range habits {
		done := CompletedCount(h.ID, completions)
		totalDone += done

		hs := HabitStat{
			HabitID:       h.ID,
			Name:          h.Name,
			Emoji:         h.Emoji,
			Goal:          h.Goal,
			DaysCompleted: done,
			Progress:      HabitProgress(h.ID, completions, days),
			GoalReached:   done >= h.Goal,
			CompletedDays: make([]int, 0, done),
		}
		for day := 1; day <= days; day++ {
			if completions.IsCompleted(h.ID, day) {
				hs.CompletedDays = append(hs.CompletedDays, day)
			}
		}
		if s, ok := streaks[h.ID]; ok && s != nil {
			hs.CurrentStreak = s.CurrentStreak
			hs.LongestStreak = s.LongestStreak
		}

		stats.HabitStats = append(stats.HabitStats, hs)
	}

	stats.OverallRate = percent(totalDone, days*len(habits))

	return stats
}
