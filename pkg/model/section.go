package model

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/samber/lo"
)

// Block places a time interval on a weekday
type Block struct {
	Day      Weekday
	Interval TimeInterval
}

// ParseBlocks expands a day-digits string and a list of "HHMM-HHMM" ranges into blocks: every range is placed on every day
func ParseBlocks(days string, ranges ...string) ([]Block, error) {
	weekdays := ParseWeekdays(days)
	blocks := make([]Block, 0, len(weekdays)*len(ranges))
	for _, day := range weekdays {
		for _, raw := range ranges {
			interval, err := ParseTimeInterval(raw)
			if err != nil {
				return nil, err
			}
			blocks = append(blocks, Block{Day: day, Interval: interval})
		}
	}
	return blocks, nil
}

// Section is an offering of a subject taught by a professor to a group. It is immutable once constructed
type Section struct {
	professor Professor
	subject   string
	group     string
	schedule  map[Weekday][]TimeInterval
}

func NewSection(professor Professor, subject, group string, blocks []Block) (*Section, error) {
	if strings.TrimSpace(professor.name) == "" {
		return nil, fmt.Errorf("%w: professor", ErrMissingField)
	} else if strings.TrimSpace(subject) == "" {
		return nil, fmt.Errorf("%w: subject name", ErrMissingField)
	} else if strings.TrimSpace(group) == "" {
		return nil, fmt.Errorf("%w: group", ErrMissingField)
	}

	section := &Section{
		professor: professor,
		subject:   subject,
		group:     group,
		schedule:  make(map[Weekday][]TimeInterval),
	}
	for _, block := range blocks {
		if !block.Day.Valid() {
			return nil, fmt.Errorf("%w: %d", ErrInvalidWeekday, block.Day)
		}
		if block.Interval.start >= block.Interval.end {
			return nil, fmt.Errorf("%w: empty interval on %v", ErrInvalidInterval, block.Day)
		}
		section.addBlock(block.Day, block.Interval)
	}
	return section, nil
}

// addBlock accumulates an interval on the day keeping the day's intervals sorted by start. Only used during construction
func (section *Section) addBlock(day Weekday, interval TimeInterval) {
	intervals := append(section.schedule[day], interval)
	slices.SortStableFunc(intervals, func(a, b TimeInterval) int { return a.start - b.start })
	section.schedule[day] = intervals
}

func (section *Section) Professor() Professor { return section.professor }
func (section *Section) Subject() string      { return section.subject }
func (section *Section) Group() string        { return section.group }
func (section *Section) Rating() float64      { return section.professor.rating }

// ID identifies the section by subject, group and professor
func (section *Section) ID() string {
	return section.subject + "_" + section.group + "_" + section.professor.FullName()
}

// Days returns the scheduled weekdays in ascending order
func (section *Section) Days() []Weekday {
	days := slices.Collect(maps.Keys(section.schedule))
	slices.Sort(days)
	return days
}

// Intervals returns a copy of the intervals scheduled on the day
func (section *Section) Intervals(day Weekday) []TimeInterval {
	return slices.Clone(section.schedule[day])
}

// Schedule returns a copy of the weekly schedule
func (section *Section) Schedule() map[Weekday][]TimeInterval {
	schedule := make(map[Weekday][]TimeInterval, len(section.schedule))
	for day, intervals := range section.schedule {
		schedule[day] = slices.Clone(intervals)
	}
	return schedule
}

func (section *Section) TotalMinutes() int {
	return lo.SumBy(lo.Flatten(lo.Values(section.schedule)), func(interval TimeInterval) int {
		return interval.Minutes()
	})
}

func (section *Section) ConflictsWith(other *Section) bool {
	return Conflicts(section, other)
}

func (section *Section) String() string {
	var builder strings.Builder
	fmt.Fprintf(&builder, "%v [%v] | Prof: %v | Rating: %v |", section.subject, section.group, section.professor.FullName(), section.professor.rating)
	for _, day := range section.Days() {
		fmt.Fprintf(&builder, " %v:", day.Abbreviation())
		for _, interval := range section.schedule[day] {
			fmt.Fprintf(&builder, " [%v]", interval.Format())
		}
	}
	return builder.String()
}

// CloneToGroup copies the section into another group. The copy shares no state with the original
func CloneToGroup(section *Section, group string) *Section {
	clone := &Section{
		professor: section.professor,
		subject:   section.subject,
		group:     group,
		schedule:  section.Schedule(),
	}
	return clone
}
