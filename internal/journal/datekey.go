package journal

import (
	"fmt"
	"time"
)

// Day keys are YYYY-MM-DD strings in the user's local timezone. Lexicographic
// comparison of two keys equals chronological order, which sorting and
// due-date checks rely on.
const dayKeyLayout = "2006-01-02"

// Today returns the current calendar day key in the given location.
func Today(loc *time.Location) string {
	return time.Now().In(loc).Format(dayKeyLayout)
}

// AddDays offsets a day key by n calendar days. The arithmetic is done on the
// calendar date, not on elapsed seconds, so daylight-saving transitions do not
// distort the count.
func AddDays(key string, n int) (string, error) {
	t, err := time.Parse(dayKeyLayout, key)
	if err != nil {
		return "", fmt.Errorf("parse day key %q: %w", key, err)
	}
	return t.AddDate(0, 0, n).Format(dayKeyLayout), nil
}

// ValidDayKey reports whether the value is a well-formed day key.
func ValidDayKey(key string) bool {
	_, err := time.Parse(dayKeyLayout, key)
	return err == nil
}
