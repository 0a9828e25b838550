package model

import (
	"fmt"
	"slices"
)

// Weekday is a day of the week encoded from 1 (Monday) to 7 (Sunday)
type Weekday uint8

const (
	Monday Weekday = iota + 1
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

var weekdayAbbreviations = map[Weekday]string{
	Monday:    "Mon",
	Tuesday:   "Tue",
	Wednesday: "Wed",
	Thursday:  "Thu",
	Friday:    "Fri",
	Saturday:  "Sat",
	Sunday:    "Sun",
}

var weekdayNames = map[Weekday]string{
	Monday:    "Monday",
	Tuesday:   "Tuesday",
	Wednesday: "Wednesday",
	Thursday:  "Thursday",
	Friday:    "Friday",
	Saturday:  "Saturday",
	Sunday:    "Sunday",
}

func WeekdayFromCode(code int) (Weekday, error) {
	if code < int(Monday) || code > int(Sunday) {
		return 0, fmt.Errorf("%w: %d", ErrInvalidWeekday, code)
	}
	return Weekday(code), nil
}

func (day Weekday) Valid() bool {
	return day >= Monday && day <= Sunday
}

func (day Weekday) Abbreviation() string {
	return weekdayAbbreviations[day]
}

func (day Weekday) String() string {
	if name, ok := weekdayNames[day]; ok {
		return name
	}
	return fmt.Sprintf("Weekday(%d)", uint8(day))
}

// ParseWeekdays extracts the days encoded as digits in a string such as "135" (Monday, Wednesday and Friday).
// Characters that are not digits between 1 and 7 are ignored
func ParseWeekdays(digits string) []Weekday {
	days := make([]Weekday, 0, len(digits))
	for _, char := range digits {
		if char < '1' || char > '7' {
			continue
		}
		day := Weekday(char - '0')
		if !slices.Contains(days, day) {
			days = append(days, day)
		}
	}
	slices.Sort(days)
	return days
}
