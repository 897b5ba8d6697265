package domain

import (
	"errors"
	"fmt"
	"strconv"
	"time"
)

var (
	ErrInvalidDate  = errors.New("invalid date (must be YYYY-MM-DD)")
	ErrInvalidMonth = errors.New("invalid month (must be 0-11)")
	ErrInvalidDay   = errors.New("day is outside of the month")
	ErrInvalidYear  = errors.New("invalid year (must be 1-9999)")
)

const DateLayout = "2006-01-02"

// Years outside this range do not fit the four digit YYYY form.
const (
	MinYear = 1
	MaxYear = 9999
)

const secondsPerDay = 24 * 60 * 60

// Date is a calendar day kept in its literal YYYY-MM-DD form.
// It is never converted through a time zone, so comparisons are plain string comparisons.
type Date string

// NewDate builds a Date from a year, a zero-indexed month and a day of month.
func NewDate(year, month, day int) Date {
	return Date(fmt.Sprintf("%04d-%02d-%02d", year, month+1, day))
}

func ParseDate(s string) (Date, error) {
	if len(s) != len(DateLayout) {
		return "", ErrInvalidDate
	}
	if _, err := time.Parse(DateLayout, s); err != nil {
		return "", ErrInvalidDate
	}
	return Date(s), nil
}

// Today returns the calendar day of now as seen in loc.
func Today(now time.Time, loc *time.Location) Date {
	if loc == nil {
		loc = time.UTC
	}
	y, m, d := now.In(loc).Date()
	return NewDate(y, int(m)-1, d)
}

// Parts splits the date into year, zero-indexed month and day of month.
func (d Date) Parts() (year, month, day int) {
	s := string(d)
	if len(s) != len(DateLayout) {
		return 0, 0, 0
	}
	year, _ = strconv.Atoi(s[0:4])
	m, _ := strconv.Atoi(s[5:7])
	day, _ = strconv.Atoi(s[8:10])
	return year, m - 1, day
}

// Ordinal is the number of days since 1970-01-01. Consecutive days differ by exactly one.
func (d Date) Ordinal() int64 {
	y, m, day := d.Parts()
	return time.Date(y, time.Month(m+1), day, 0, 0, 0, 0, time.UTC).Unix() / secondsPerDay
}

func DateFromOrdinal(n int64) Date {
	y, m, d := time.Unix(n*secondsPerDay, 0).UTC().Date()
	return NewDate(y, int(m)-1, d)
}

func (d Date) AddDays(n int) Date {
	return DateFromOrdinal(d.Ordinal() + int64(n))
}

func (d Date) Month() MonthKey {
	y, m, _ := d.Parts()
	return NewMonthKey(y, m)
}

func (d Date) String() string {
	return string(d)
}

// MonthKey identifies one month of the completion cache. Month is zero-indexed.
type MonthKey struct {
	Year  int `json:"year"`
	Month int `json:"month"`
}

// NewMonthKey normalizes rolled-over months, so (2024, -1) becomes (2023, 11)
// and (2024, 12) becomes (2025, 0).
func NewMonthKey(year, month int) MonthKey {
	carry := month / 12
	m := month % 12
	if m < 0 {
		m += 12
		carry--
	}
	return MonthKey{Year: year + carry, Month: m}
}

func ValidateMonth(month int) error {
	if month < 0 || month > 11 {
		return ErrInvalidMonth
	}
	return nil
}

func ValidateYear(year int) error {
	if year < MinYear || year > MaxYear {
		return ErrInvalidYear
	}
	return nil
}

func (k MonthKey) Prev() MonthKey {
	return NewMonthKey(k.Year, k.Month-1)
}

func (k MonthKey) Next() MonthKey {
	return NewMonthKey(k.Year, k.Month+1)
}

func (k MonthKey) Days() int {
	return DaysInMonth(k.Year, k.Month)
}

func (k MonthKey) FirstDay() Date {
	return NewDate(k.Year, k.Month, 1)
}

func (k MonthKey) LastDay() Date {
	return NewDate(k.Year, k.Month, k.Days())
}

// Date returns the given day of this month.
func (k MonthKey) Date(day int) (Date, error) {
	if err := ValidateYear(k.Year); err != nil {
		return "", err
	}
	if day < 1 || day > k.Days() {
		return "", ErrInvalidDay
	}
	return NewDate(k.Year, k.Month, day), nil
}

// Contains reports whether d falls inside the month.
func (k MonthKey) Contains(d Date) bool {
	return d >= k.FirstDay() && d <= k.LastDay()
}

func (k MonthKey) String() string {
	return fmt.Sprintf("%04d-%02d", k.Year, k.Month+1)
}
