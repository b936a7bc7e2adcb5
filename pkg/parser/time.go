package parser

import (
	"fmt"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/robfig/cron/v3"

	"github.com/trigg3rX/triggerx-go-sdk/pkg/types"
)

// Five-field expressions and the optional leading seconds field are both accepted, as are descriptors like @daily.
var cronParser = cron.NewParser(cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)

// Layouts accepted for specific schedules, tried in order
var specificLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
}

func ParseCron(expr string) (cron.Schedule, error) {
	schedule, err := cronParser.Parse(strings.TrimSpace(expr))
	if err != nil {
		return nil, fmt.Errorf("invalid cron expression: %w", err)
	}
	return schedule, nil
}

// ParseSpecific parses a one-off schedule in loc; RFC3339 values keep their own offset
func ParseSpecific(value string, loc *time.Location) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range specificLayouts {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid specific schedule %q", value)
}

// LoadLocation resolves an IANA timezone name, treating empty as UTC
func LoadLocation(timezone string) (*time.Location, error) {
	if timezone == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}
	return loc, nil
}

// NextExecutionTime returns the first run of a time trigger after from
func NextExecutionTime(from time.Time, trigger *types.TimeTrigger, timezone string) (time.Time, error) {
	if trigger == nil {
		return time.Time{}, fmt.Errorf("time trigger is required")
	}
	loc, err := LoadLocation(timezone)
	if err != nil {
		return time.Time{}, err
	}

	switch trigger.ScheduleType {
	case types.ScheduleInterval:
		if trigger.TimeInterval <= 0 {
			return time.Time{}, fmt.Errorf("invalid time interval")
		}
		return from.Add(time.Duration(trigger.TimeInterval) * time.Second), nil

	case types.ScheduleCron:
		if trigger.CronExpression == "" {
			return time.Time{}, fmt.Errorf("cron expression is required for cron schedule type")
		}
		schedule, err := ParseCron(trigger.CronExpression)
		if err != nil {
			return time.Time{}, err
		}
		return schedule.Next(from.In(loc)), nil

	case types.ScheduleSpecific:
		if trigger.SpecificSchedule == "" {
			return time.Time{}, fmt.Errorf("specific schedule is required for specific schedule type")
		}
		return ParseSpecific(trigger.SpecificSchedule, loc)

	default:
		return time.Time{}, fmt.Errorf("unknown schedule type: %s", trigger.ScheduleType)
	}
}
