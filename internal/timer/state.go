package timer

import "fmt"

// State is the current mode of the pomodoro timer.
type State int

const (
	StateIdle State = iota
	StateWorking
	StateShortBreak
	StateLongBreak
	StatePaused
)

var stateNames = map[State]string{
	StateIdle:       "idle",
	StateWorking:    "working",
	StateShortBreak: "short_break",
	StateLongBreak:  "long_break",
	StatePaused:     "paused",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// IsActive reports whether the timer is counting down in this state.
func (s State) IsActive() bool {
	return s == StateWorking || s == StateShortBreak || s == StateLongBreak
}

// IsBreak reports whether this state is a break.
func (s State) IsBreak() bool {
	return s == StateShortBreak || s == StateLongBreak
}

// SessionType classifies a finished interval. Values match the
// session_type column in the store.
type SessionType string

const (
	SessionWork       SessionType = "work"
	SessionShortBreak SessionType = "short_break"
	SessionLongBreak  SessionType = "long_break"
)

// SessionTypeFromState converts an active state into the session type it
// produces. Idle and Paused never finish a session, so they are invalid here.
func SessionTypeFromState(s State) (SessionType, error) {
	switch s {
	case StateWorking:
		return SessionWork, nil
	case StateShortBreak:
		return SessionShortBreak, nil
	case StateLongBreak:
		return SessionLongBreak, nil
	}
	return "", fmt.Errorf("cannot derive session type from state %s", s)
}
