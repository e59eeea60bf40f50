package tasks

import (
	"strings"
	"time"

	pkgerrors "github.com/angelmondragon/taskplanner-backend/pkg/errors"
)

// DateLayout is the canonical form for planner days.
const DateLayout = "2006-01-02"

// Today returns the current UTC calendar day in canonical form.
func Today() string {
	return time.Now().UTC().Format(DateLayout)
}

// NormalizeDay canonicalizes a YYYY-MM-DD day string, rejecting anything
// that does not name a real calendar date.
func NormalizeDay(value string) (string, error) {
	parsed, err := time.Parse(DateLayout, strings.TrimSpace(value))
	if err != nil {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "date must be formatted YYYY-MM-DD")
	}
	return parsed.Format(DateLayout), nil
}

// DayName returns the weekday name for a canonical day string. Call it with
// normalized input; anything else yields an empty name.
func DayName(date string) string {
	parsed, err := time.Parse(DateLayout, date)
	if err != nil {
		return ""
	}
	return parsed.Weekday().String()
}
