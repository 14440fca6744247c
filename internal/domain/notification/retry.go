package notification

import "unicode/utf8"

// MaxErrorLength bounds last_error stored per job.
const MaxErrorLength = 500

// BackoffSeconds returns the retry delay after the given number of
// completed attempts: 10s, 20s, 40s, 80s, ... capped at one hour.
func BackoffSeconds(attempts int32) int64 {
	if attempts < 1 {
		attempts = 1
	}

	const (
		base    = int64(10)
		maxWait = int64(3600)
	)

	wait := base
	for i := int32(1); i < attempts; i++ {
		wait *= 2
		if wait >= maxWait {
			return maxWait
		}
	}

	if wait > maxWait {
		return maxWait
	}
	return wait
}

// Trim bounds a stored error message to max bytes, backing off to the
// nearest rune boundary so the result is always valid UTF-8. Nil passes
// through.
func Trim(s *string, max int) *string {
	if s == nil {
		return nil
	}
	if len(*s) <= max {
		return s
	}
	cut := max
	for cut > 0 && !utf8.RuneStart((*s)[cut]) {
		cut--
	}
	trimmed := (*s)[:cut]
	return &trimmed
}
