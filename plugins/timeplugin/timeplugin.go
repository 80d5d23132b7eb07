// Package timeplugin answers questions about the current date and time.
package timeplugin

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/smallnest/kernelplay/plugin"
)

// PluginName is the name the plugin registers under.
const PluginName = "TimePlugin"

// Clock returns the current time. Tests pass a fixed clock.
type Clock func() time.Time

// Layouts used by the plugin functions.
const (
	LongDateLayout = "Monday, January 2, 2006"
	TimeLayout     = "03:04:05 PM"
	FullLayout     = LongDateLayout + " " + TimeLayout
	DateLayout     = "1/2/2006"
)

// New builds the plugin. A nil clock uses time.Now.
func New(clock Clock) *plugin.Plugin {
	if clock == nil {
		clock = time.Now
	}

	text := func(name, description string, render func(time.Time) string) *plugin.Function {
		return plugin.NewFunction(name, description, func(ctx context.Context, _ plugin.Arguments) (string, error) {
			return render(clock()), nil
		})
	}

	return plugin.New(PluginName, "Current date and time",
		text("Now", "Get the current date and time in the local time zone", func(t time.Time) string {
			return t.Format(FullLayout)
		}),
		text("UtcNow", "Get the current UTC date and time", func(t time.Time) string {
			return t.UTC().Format(FullLayout)
		}),
		text("Today", "Get the current date", func(t time.Time) string {
			return t.Format(LongDateLayout)
		}),
		text("Date", "Get the current date in short form", func(t time.Time) string {
			return t.Format(DateLayout)
		}),
		text("Time", "Get the current time", func(t time.Time) string {
			return t.Format(TimeLayout)
		}),
		text("Year", "Get the current year", func(t time.Time) string {
			return strconv.Itoa(t.Year())
		}),
		text("Month", "Get the current month name", func(t time.Time) string {
			return t.Month().String()
		}),
		text("MonthNumber", "Get the current month number", func(t time.Time) string {
			return fmt.Sprintf("%02d", int(t.Month()))
		}),
		text("Day", "Get the current day of the month", func(t time.Time) string {
			return fmt.Sprintf("%02d", t.Day())
		}),
		text("DayOfWeek", "Get the current day of the week", func(t time.Time) string {
			return t.Weekday().String()
		}),
		text("Hour", "Get the current clock hour", func(t time.Time) string {
			return t.Format("3 PM")
		}),
		text("TimeZoneOffset", "Get the local time zone offset from UTC", func(t time.Time) string {
			return t.Format("-07:00")
		}),
		text("TimeZoneName", "Get the local time zone name", func(t time.Time) string {
			name, _ := t.Zone()
			return name
		}),
		plugin.NewFunction("DaysAgo", "Get the date a number of days before today",
			func(ctx context.Context, args plugin.Arguments) (string, error) {
				days, err := strconv.Atoi(args.String("input"))
				if err != nil {
					return "", fmt.Errorf("days ago: %q is not a whole number", args.String("input"))
				}
				return clock().AddDate(0, 0, -days).Format(LongDateLayout), nil
			},
			plugin.Parameter{Name: "input", Description: "Number of days to offset from today", Type: plugin.TypeNumber, Required: true},
		),
	)
}
