package timer

import "errors"

// Config holds timer durations. Durations are minutes; the engine converts
// to seconds at construction.
type Config struct {
	WorkDuration            int
	ShortBreakDuration      int
	LongBreakDuration       int
	PomodorosUntilLongBreak int
}

// DefaultConfig is the classic 25/5/15 pomodoro setup.
func DefaultConfig() Config {
	return Config{
		WorkDuration:            25,
		ShortBreakDuration:      5,
		LongBreakDuration:       15,
		PomodorosUntilLongBreak: 4,
	}
}

// Validate rejects configurations the engine cannot run with. The engine
// itself does no bounds-checking on already-validated durations.
func (c Config) Validate() error {
	if c.WorkDuration < 1 {
		return errors.New("work duration must be at least 1 minute")
	}
	if c.ShortBreakDuration < 1 {
		return errors.New("short break duration must be at least 1 minute")
	}
	if c.LongBreakDuration < 1 {
		return errors.New("long break duration must be at least 1 minute")
	}
	if c.PomodorosUntilLongBreak < 1 {
		return errors.New("pomodoros until long break must be at least 1")
	}
	return nil
}
