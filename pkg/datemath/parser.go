package datemath

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// maxRelativeAmount bounds N in "in N <unit>".
const maxRelativeAmount = 100000

var inDurationRe = regexp.MustCompile(`^in (\d+) (hour|hours|day|days|week|weeks|month|months)$`)

// Parser converts deadline strings to absolute time.Time values.
type Parser struct {
	location *time.Location
}

// NewParser creates a new date parser for the given IANA timezone string.
// e.g. "Asia/Dhaka"
func NewParser(timezone string) (*Parser, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}
	return &Parser{location: loc}, nil
}

// Location returns the timezone relative expressions are evaluated in.
func (p *Parser) Location() *time.Location {
	return p.location
}

// Resolve turns any supported deadline string into an absolute time.
// Timestamps with an offset keep their instant, zone-less timestamps are read
// in the parser's timezone, and day-only or relative inputs resolve to the
// end of that day.
func (p *Parser) Resolve(input string, baseTime time.Time) (Result, error) {
	s := strings.TrimSpace(input)
	if s == "" {
		return Result{}, ErrUnrecognized
	}

	for _, layout := range offsetLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Result{Time: t}, nil
		}
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, s, p.location); err == nil {
			return Result{Time: t}, nil
		}
	}
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, p.location); err == nil {
			return Result{Time: p.EndOfDay(t), AllDay: true}, nil
		}
	}

	if strings.HasPrefix(strings.ToLower(s), "in ") && strings.Contains(strings.ToLower(s), "hour") {
		t, err := p.parseInHours(strings.ToLower(s), baseTime)
		if err != nil {
			return Result{}, err
		}
		return Result{Time: t}, nil
	}

	start, err := p.Parse(s, baseTime)
	if err != nil {
		return Result{}, err
	}
	return Result{Time: p.EndOfDay(start), AllDay: true}, nil
}

// Parse converts a relative day expression to the start of that day.
// The baseTime is used as the reference point (usually time.Now()).
func (p *Parser) Parse(relative string, baseTime time.Time) (time.Time, error) {
	relative = strings.ToLower(strings.TrimSpace(relative))

	switch relative {
	case "today", "tonight":
		return p.startOfDay(baseTime), nil
	case "tomorrow":
		return p.startOfDay(baseTime.AddDate(0, 0, 1)), nil
	case "yesterday":
		return p.startOfDay(baseTime.AddDate(0, 0, -1)), nil
	case "end of week", "this weekend":
		return p.nextWeekday(time.Sunday, baseTime, true), nil
	}

	// Handle "in X days/weeks/months"
	if strings.HasPrefix(relative, "in ") {
		return p.parseInDuration(relative, baseTime)
	}

	// Handle "next <weekday>" and "this <weekday>"
	if strings.HasPrefix(relative, "next ") {
		return p.parseWeekday(strings.TrimPrefix(relative, "next "), baseTime, false)
	}
	if strings.HasPrefix(relative, "this ") {
		return p.parseWeekday(strings.TrimPrefix(relative, "this "), baseTime, true)
	}
	if _, ok := weekdays[relative]; ok {
		return p.parseWeekday(relative, baseTime, false)
	}

	return baseTime, fmt.Errorf("%w: %q", ErrUnrecognized, relative)
}

// parseInDuration handles patterns like "in 3 days", "in 2 weeks", "in 1 month".
func (p *Parser) parseInDuration(relative string, baseTime time.Time) (time.Time, error) {
	matches := inDurationRe.FindStringSubmatch(relative)
	if len(matches) != 3 {
		return baseTime, fmt.Errorf("%w: invalid duration format %q", ErrUnrecognized, relative)
	}

	amount, err := parseAmount(matches[1])
	if err != nil {
		return baseTime, err
	}
	unit := matches[2]

	switch {
	case strings.HasPrefix(unit, "day"):
		return p.startOfDay(baseTime.AddDate(0, 0, amount)), nil
	case strings.HasPrefix(unit, "week"):
		return p.startOfDay(baseTime.AddDate(0, 0, amount*7)), nil
	case strings.HasPrefix(unit, "month"):
		return p.startOfDay(baseTime.AddDate(0, amount, 0)), nil
	}

	return baseTime, fmt.Errorf("%w: unit %q", ErrUnrecognized, unit)
}

// parseInHours handles "in 3 hours", which keeps the time of day.
func (p *Parser) parseInHours(relative string, baseTime time.Time) (time.Time, error) {
	matches := inDurationRe.FindStringSubmatch(relative)
	if len(matches) != 3 || !strings.HasPrefix(matches[2], "hour") {
		return baseTime, fmt.Errorf("%w: invalid duration format %q", ErrUnrecognized, relative)
	}
	amount, err := parseAmount(matches[1])
	if err != nil {
		return baseTime, err
	}
	return baseTime.Add(time.Duration(amount) * time.Hour), nil
}

// parseAmount reads the count of a relative expression. Counts beyond
// maxRelativeAmount are refused so date and duration arithmetic cannot overflow.
func parseAmount(s string) (int, error) {
	amount, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: amount %q: %v", ErrUnrecognized, s, err)
	}
	if amount > maxRelativeAmount {
		return 0, fmt.Errorf("%w: amount %d exceeds %d", ErrUnrecognized, amount, maxRelativeAmount)
	}
	return amount, nil
}

func (p *Parser) parseWeekday(dayName string, baseTime time.Time, allowToday bool) (time.Time, error) {
	target, ok := weekdays[dayName]
	if !ok {
		return baseTime, fmt.Errorf("%w: unknown weekday %q", ErrUnrecognized, dayName)
	}
	return p.nextWeekday(target, baseTime, allowToday), nil
}

// nextWeekday returns the start of the next target weekday. With allowToday
// the current day counts when it already is the target.
func (p *Parser) nextWeekday(target time.Weekday, baseTime time.Time, allowToday bool) time.Time {
	local := baseTime.In(p.location)
	daysUntil := int(target - local.Weekday())
	if daysUntil < 0 || (daysUntil == 0 && !allowToday) {
		daysUntil += 7
	}
	return p.startOfDay(local.AddDate(0, 0, daysUntil))
}

// startOfDay returns midnight at the start of the given day in the parser's timezone.
func (p *Parser) startOfDay(t time.Time) time.Time {
	t = t.In(p.location)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, p.location)
}

// EndOfDay returns 23:59:59 on the day of t in the parser's timezone.
func (p *Parser) EndOfDay(t time.Time) time.Time {
	return p.startOfDay(t).Add(23*time.Hour + 59*time.Minute + 59*time.Second)
}
