package utils

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const DayLayout = "2006-01-02"

const (
	OutputText = "text"
	OutputJSON = "json"
	OutputYAML = "yaml"
)

// ParseRange turns the --from and --to days into a half-open interval in
// loc. An empty from means today and an empty to means the day after from.
func ParseRange(from, to string, now time.Time, loc *time.Location) (time.Time, time.Time, error) {
	var (
		start time.Time
		err   error
	)

	if from == "" {
		y, m, d := now.In(loc).Date()
		start = time.Date(y, m, d, 0, 0, 0, 0, loc)
	} else if start, err = time.ParseInLocation(DayLayout, from, loc); err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid --from %q, expected YYYY-MM-DD", from)
	}

	end := start.AddDate(0, 0, 1)
	if to != "" {
		last, err := time.ParseInLocation(DayLayout, to, loc)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid --to %q, expected YYYY-MM-DD", to)
		}
		end = last.AddDate(0, 0, 1)
	}

	if !end.After(start) {
		return time.Time{}, time.Time{}, fmt.Errorf("--to must not be before --from")
	}

	return start, end, nil
}

// FormatMinutes renders a minute count as "1h 05m" or "45m".
func FormatMinutes(minutes int) string {
	if minutes < 60 {
		return fmt.Sprintf("%dm", minutes)
	}
	return fmt.Sprintf("%dh %02dm", minutes/60, minutes%60)
}

// Truncate shortens s to max runes, marking the cut with "...".
func Truncate(s string, max int) string {
	s = strings.Join(strings.Fields(s), " ")
	runes := []rune(s)
	if len(runes) <= max || max < 4 {
		return s
	}
	return string(runes[:max-3]) + "..."
}

func ValidOutput(format string) error {
	switch format {
	case OutputText, OutputJSON, OutputYAML:
		return nil
	default:
		return fmt.Errorf("unsupported output format %q, use text, json or yaml", format)
	}
}

// Encode writes v as JSON or YAML. Text output is rendered by the commands.
func Encode(w io.Writer, format string, v interface{}) error {
	switch format {
	case OutputJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(v)
	case OutputYAML:
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(v); err != nil {
			return err
		}
		return encoder.Close()
	default:
		return ValidOutput(format)
	}
}
