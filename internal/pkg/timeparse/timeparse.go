// Package timeparse resolves natural-language time expressions such as
// "in 10 minutes", "at 11:30 PM" or "tomorrow at 9am" into absolute
// timestamps. Resolution is pure: the caller supplies the reference "now"
// and the same inputs always yield the same output.
package timeparse

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	appErrors "agenda/internal/pkg/errors"
)

// parseFunc turns the submatches of one grammar pattern into an absolute
// timestamp relative to now.
type parseFunc func(groups []string, now time.Time) (time.Time, error)

// pattern pairs an anchored regular expression with its parse function.
type pattern struct {
	re    *regexp.Regexp
	parse parseFunc
}

// grammar is the ordered table of recognized expression families. The first
// matching pattern wins; every regexp is anchored so the families cannot
// shadow each other.
var grammar = []pattern{
	{regexp.MustCompile(`^in\s+(\d+)\s+(second|sec|minute|min|hour|day|week)s?$`), parseRelative},
	{regexp.MustCompile(`^(?:at\s+)?(\d{1,2})(?::(\d{2}))?\s*([ap]\.?m\.?)?$`), parseClockTime},
	{regexp.MustCompile(`^tomorrow(?:\s+at\s+(\d{1,2})(?::(\d{2}))?\s*([ap]\.?m\.?)?)?$`), parseTomorrow},
}

var durationPattern = regexp.MustCompile(`^(?:for\s+)?(\d+)\s+(minute|min|hour|day)s?$`)

// Resolve parses expression against the grammar table and returns the
// resulting absolute timestamp. It returns ErrUnparseableTime when no
// family matches; callers must not create records or timers on that path.
func Resolve(expression string, now time.Time) (time.Time, error) {
	text := strings.ToLower(strings.TrimSpace(expression))
	for _, p := range grammar {
		if groups := p.re.FindStringSubmatch(text); groups != nil {
			return p.parse(groups, now)
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", appErrors.ErrUnparseableTime, expression)
}

// ResolveDuration parses a duration expression such as "for 2 hours" or
// "90 minutes", used to compute an event's end time from its start.
func ResolveDuration(expression string) (time.Duration, error) {
	text := strings.ToLower(strings.TrimSpace(expression))
	groups := durationPattern.FindStringSubmatch(text)
	if groups == nil {
		return 0, fmt.Errorf("%w: %q", appErrors.ErrUnparseableTime, expression)
	}
	n, err := strconv.Atoi(groups[1])
	if err != nil {
		return 0, fmt.Errorf("%w: %q", appErrors.ErrUnparseableTime, expression)
	}
	switch groups[2] {
	case "minute", "min":
		return time.Duration(n) * time.Minute, nil
	case "hour":
		return time.Duration(n) * time.Hour, nil
	default:
		return time.Duration(n) * 24 * time.Hour, nil
	}
}

// parseRelative handles "in N <unit>" with units from seconds to weeks.
func parseRelative(groups []string, now time.Time) (time.Time, error) {
	n, err := strconv.Atoi(groups[1])
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: bad count %q", appErrors.ErrUnparseableTime, groups[1])
	}
	switch groups[2] {
	case "second", "sec":
		return now.Add(time.Duration(n) * time.Second), nil
	case "minute", "min":
		return now.Add(time.Duration(n) * time.Minute), nil
	case "hour":
		return now.Add(time.Duration(n) * time.Hour), nil
	case "day":
		return now.AddDate(0, 0, n), nil
	default: // week
		return now.AddDate(0, 0, 7*n), nil
	}
}

// parseClockTime handles "[at] H[:MM] [AM|PM]". The result is always the
// next future occurrence of the given clock time: today if it has not yet
// elapsed, otherwise the same time tomorrow. An hour with no meridiem is
// read on the 24-hour clock ("at 10" means 10:00) and likewise rolled
// forward to its next occurrence.
func parseClockTime(groups []string, now time.Time) (time.Time, error) {
	hour, minute, err := clockFields(groups[1], groups[2], groups[3])
	if err != nil {
		return time.Time{}, err
	}
	target := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
	if !target.After(now) {
		target = target.AddDate(0, 0, 1)
	}
	return target, nil
}

// parseTomorrow handles "tomorrow [at H[:MM] [AM|PM]]". A bare "tomorrow"
// defaults to 09:00.
func parseTomorrow(groups []string, now time.Time) (time.Time, error) {
	hour, minute := 9, 0
	if groups[1] != "" {
		var err error
		hour, minute, err = clockFields(groups[1], groups[2], groups[3])
		if err != nil {
			return time.Time{}, err
		}
	}
	tomorrow := now.AddDate(0, 0, 1)
	return time.Date(tomorrow.Year(), tomorrow.Month(), tomorrow.Day(), hour, minute, 0, 0, now.Location()), nil
}

// clockFields validates and converts the hour/minute/meridiem submatches to
// 24-hour clock fields. Minutes default to :00 when omitted.
func clockFields(hourStr, minuteStr, meridiem string) (int, int, error) {
	hour, err := strconv.Atoi(hourStr)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: bad hour %q", appErrors.ErrUnparseableTime, hourStr)
	}
	minute := 0
	if minuteStr != "" {
		minute, err = strconv.Atoi(minuteStr)
		if err != nil || minute > 59 {
			return 0, 0, fmt.Errorf("%w: bad minute %q", appErrors.ErrUnparseableTime, minuteStr)
		}
	}

	period := strings.ReplaceAll(strings.ToLower(meridiem), ".", "")
	switch period {
	case "":
		if hour > 23 {
			return 0, 0, fmt.Errorf("%w: hour %d out of range", appErrors.ErrUnparseableTime, hour)
		}
	case "am", "pm":
		if hour < 1 || hour > 12 {
			return 0, 0, fmt.Errorf("%w: hour %d out of range for %s", appErrors.ErrUnparseableTime, hour, period)
		}
		if period == "pm" && hour < 12 {
			hour += 12
		} else if period == "am" && hour == 12 {
			hour = 0
		}
	default:
		return 0, 0, fmt.Errorf("%w: bad meridiem %q", appErrors.ErrUnparseableTime, meridiem)
	}
	return hour, minute, nil
}
