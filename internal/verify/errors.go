package verify

import (
	"errors"
	"fmt"
)

// Outcome is the final state of one target.
type Outcome int

const (
	Passed Outcome = iota
	NavigationFailed
	NetworkIdleFailed
	SelectorTimeout
	ScreenshotFailed
)

var outcomeNames = map[Outcome]string{
	Passed:            "passed",
	NavigationFailed:  "navigation_failed",
	NetworkIdleFailed: "network_idle_timeout",
	SelectorTimeout:   "selector_timeout",
	ScreenshotFailed:  "screenshot_failed",
}

func (o Outcome) String() string {
	if s, ok := outcomeNames[o]; ok {
		return s
	}
	return fmt.Sprintf("outcome(%d)", int(o))
}

// MarshalText lets reports carry the outcome name instead of its number.
func (o Outcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

var (
	ErrNavigation         = errors.New("navigation failed")
	ErrNetworkIdleTimeout = errors.New("network idle timeout")
	ErrSelectorTimeout    = errors.New("selector timeout")
	ErrScreenshot         = errors.New("screenshot failed")
)

var outcomeErrors = map[Outcome]error{
	NavigationFailed:  ErrNavigation,
	NetworkIdleFailed: ErrNetworkIdleTimeout,
	SelectorTimeout:   ErrSelectorTimeout,
	ScreenshotFailed:  ErrScreenshot,
}

// StepError records which step of which target failed. Its message leaves
// out the target name; callers print it alongside the target.
type StepError struct {
	Target  string
	Outcome Outcome
	Err     error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("%s: %v", outcomeErrors[e.Outcome], e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

// Is matches the sentinel for the failed step.
func (e *StepError) Is(target error) bool {
	sentinel, ok := outcomeErrors[e.Outcome]
	return ok && sentinel == target
}

func stepError(t Target, o Outcome, err error) *StepError {
	return &StepError{Target: t.Name, Outcome: o, Err: err}
}
