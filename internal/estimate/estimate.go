// Package estimate converts lesson durations into study-session units.
package estimate

import "fmt"

// Default session thresholds, in minutes.
const (
	DefaultMinSession = 10
	DefaultMaxSession = 30
)

// SessionLimits bounds the size of a single study session in minutes.
// A remainder longer than Min earns an extra session; a lesson no longer
// than Min still takes one.
type SessionLimits struct {
	Min int `json:"min" yaml:"min"`
	Max int `json:"max" yaml:"max"`
}

// DefaultLimits returns the 10/30 minute thresholds.
func DefaultLimits() SessionLimits {
	return SessionLimits{Min: DefaultMinSession, Max: DefaultMaxSession}
}

// Validate reports whether the limits can be used for estimation.
func (l SessionLimits) Validate() error {
	if l.Min <= 0 {
		return fmt.Errorf("min session size must be positive, got %d", l.Min)
	}
	if l.Max <= 0 {
		return fmt.Errorf("max session size must be positive, got %d", l.Max)
	}
	if l.Min >= l.Max {
		return fmt.Errorf("min session size (%d) must be less than max session size (%d)", l.Min, l.Max)
	}
	return nil
}

// Minutes rounds a duration in seconds up to whole minutes.
func Minutes(seconds int) int {
	if seconds <= 0 {
		return 0
	}
	return (seconds + 59) / 60
}

// DaysToPass returns the number of sessions a lesson of the given length needs.
// The result is never below 1.
func DaysToPass(seconds int, limits SessionLimits) int {
	return DaysForMinutes(Minutes(seconds), limits)
}

// DaysForMinutes is DaysToPass for a duration already expressed in minutes.
func DaysForMinutes(minutes int, limits SessionLimits) int {
	if minutes < 0 {
		minutes = 0
	}

	days := minutes / limits.Max
	if minutes%limits.Max > limits.Min {
		days++
	}
	if minutes <= limits.Min {
		days++
	}

	if days < 1 {
		return 1
	}
	return days
}
