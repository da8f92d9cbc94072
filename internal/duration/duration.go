// Package duration parses the compact interval tokens accepted on the command line
// ("30s", "5m", "1h", "2d") into a whole number of seconds.
//
// Example usage:
//
//	d, err := duration.Parse("5m")
//	if err != nil {
//	    return err
//	}
//	fmt.Println(d.Seconds()) // 300
package duration

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/wasilibs/go-re2"
)

// Seconds per supported unit.
const (
	Second int64 = 1
	Minute       = 60 * Second
	Hour         = 60 * Minute
	Day          = 24 * Hour
)

// ErrInvalidDuration is matched by every ParseError.
var ErrInvalidDuration = errors.New("invalid duration")

var tokenPattern = re2.MustCompile(`(?i)^([0-9]+)([smhd])$`)

var unitSeconds = map[string]int64{
	"s": Second,
	"m": Minute,
	"h": Hour,
	"d": Day,
}

// Duration is a positive interval expressed in whole seconds.
type Duration int64

// ParseError reports a malformed duration token. Token holds the input verbatim.
type ParseError struct {
	Token  string
	Reason string
}

func (e *ParseError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("invalid duration %q (expected <number><s|m|h|d>, e.g. 5m)", e.Token)
	}
	return fmt.Sprintf("invalid duration %q: %s", e.Token, e.Reason)
}

// Is makes errors.Is(err, ErrInvalidDuration) true for any ParseError.
func (e *ParseError) Is(target error) bool {
	return target == ErrInvalidDuration
}

// Parse converts a token such as "5m" into a Duration.
// The unit suffix is case-insensitive. Zero values are rejected.
func Parse(token string) (Duration, error) {
	m := tokenPattern.FindStringSubmatch(token)
	if m == nil {
		return 0, &ParseError{Token: token}
	}

	n, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return 0, &ParseError{Token: token, Reason: "number out of range"}
	}
	if n <= 0 {
		return 0, &ParseError{Token: token, Reason: "must be greater than zero"}
	}

	unit := unitSeconds[strings.ToLower(m[2])]
	if n > math.MaxInt64/unit {
		return 0, &ParseError{Token: token, Reason: "number out of range"}
	}

	return Duration(n * unit), nil
}

// Seconds returns the interval in seconds.
func (d Duration) Seconds() int64 {
	return int64(d)
}

// Std returns the interval as a time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d) * time.Second
}

// String formats the interval with the largest unit that divides it evenly,
// so Parse(d.String()) == d.
func (d Duration) String() string {
	s := int64(d)
	switch {
	case s <= 0:
		return "0s"
	case s%Day == 0:
		return strconv.FormatInt(s/Day, 10) + "d"
	case s%Hour == 0:
		return strconv.FormatInt(s/Hour, 10) + "h"
	case s%Minute == 0:
		return strconv.FormatInt(s/Minute, 10) + "m"
	default:
		return strconv.FormatInt(s, 10) + "s"
	}
}

// NextRuns returns the next n firing times of a timer with this interval
// that starts at from.
func (d Duration) NextRuns(from time.Time, n int) []time.Time {
	if n <= 0 || d <= 0 {
		return nil
	}

	schedule := cron.Every(d.Std())
	runs := make([]time.Time, 0, n)
	next := from
	for i := 0; i < n; i++ {
		next = schedule.Next(next)
		runs = append(runs, next)
	}
	return runs
}
