package model

import (
	"fmt"
	"strconv"
	"strings"
)

// TimeInterval is a half-open range [start, end) within a single day. Both bounds are HHMM codes (e.g. 1030 stands for 10:30)
type TimeInterval struct {
	start int
	end   int
}

func NewTimeInterval(start, end int) (TimeInterval, error) {
	if start >= end {
		return TimeInterval{}, fmt.Errorf("%w: start %04d is not before end %04d", ErrInvalidInterval, start, end)
	}
	if !validTimeCode(start) || !validTimeCode(end) {
		return TimeInterval{}, fmt.Errorf("%w: %04d-%04d is out of range", ErrInvalidInterval, start, end)
	}
	return TimeInterval{start: start, end: end}, nil
}

// ParseTimeInterval builds an interval from its "HHMM-HHMM" representation (blanks are ignored)
func ParseTimeInterval(raw string) (TimeInterval, error) {
	parts := strings.Split(strings.ReplaceAll(raw, " ", ""), "-")
	if len(parts) != 2 {
		return TimeInterval{}, fmt.Errorf("%w: malformed range %q", ErrInvalidInterval, raw)
	}

	start, err := strconv.Atoi(parts[0])
	if err != nil {
		return TimeInterval{}, fmt.Errorf("%w: malformed start in %q", ErrInvalidInterval, raw)
	}
	end, err := strconv.Atoi(parts[1])
	if err != nil {
		return TimeInterval{}, fmt.Errorf("%w: malformed end in %q", ErrInvalidInterval, raw)
	}

	return NewTimeInterval(start, end)
}

func validTimeCode(code int) bool {
	hour, minute := code/100, code%100
	return code >= 0 && hour <= 23 && minute <= 59
}

func (interval TimeInterval) Start() int { return interval.start }
func (interval TimeInterval) End() int   { return interval.end }

func (interval TimeInterval) Overlaps(other TimeInterval) bool {
	return interval.start < other.end && other.start < interval.end
}

func (interval TimeInterval) Minutes() int {
	return toMinutes(interval.end) - toMinutes(interval.start)
}

// Format returns the interval as "HH:MM-HH:MM"
func (interval TimeInterval) Format() string {
	return fmt.Sprintf("%02d:%02d-%02d:%02d", interval.start/100, interval.start%100, interval.end/100, interval.end%100)
}

func (interval TimeInterval) String() string {
	return interval.Format()
}

func toMinutes(code int) int {
	return (code/100)*60 + code%100
}
