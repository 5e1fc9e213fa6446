package timer

import (
	"fmt"
	"time"
)

// Timer is the pomodoro state machine. It derives remaining time from a
// captured start instant plus elapsed wall-clock time rather than counting
// down, so missed or delayed ticks never drift: if the host process sleeps
// for ten seconds, the next tick reports ten fewer seconds remaining.
//
// A Timer is owned by a single driving loop and is not safe for concurrent
// use. All callbacks fire synchronously within the call that triggers them.
type Timer struct {
	workDuration       int // seconds
	shortBreakDuration int
	longBreakDuration  int

	pomodorosUntilLongBreak int

	state              State
	completedPomodoros int
	duration           int // nominal duration of the running session, seconds
	sessionStart       time.Time
	pausedState        State // active state that was paused
	pausedRemaining    int
	currentTaskID      *int64

	// OnStateChange fires on every transition with the new state.
	OnStateChange func(State)
	// OnTick fires on each tick that does not finish the session, with the
	// remaining time in seconds.
	OnTick func(remaining int)
	// OnSessionComplete fires when a session reaches zero, with the session
	// type, its nominal duration in seconds, and the task id that was active
	// (nil for breaks and unassigned work).
	OnSessionComplete func(sessionType SessionType, duration int, taskID *int64)

	now func() time.Time // injectable clock for tests
}

// New builds a timer from an already-validated config.
func New(cfg Config) *Timer {
	return &Timer{
		workDuration:            cfg.WorkDuration * 60,
		shortBreakDuration:      cfg.ShortBreakDuration * 60,
		longBreakDuration:       cfg.LongBreakDuration * 60,
		pomodorosUntilLongBreak: cfg.PomodorosUntilLongBreak,
		state:                   StateIdle,
		now:                     time.Now,
	}
}

// SetConfig swaps in new durations for subsequent sessions. A session
// already in progress keeps the nominal duration it started with.
func (t *Timer) SetConfig(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	t.workDuration = cfg.WorkDuration * 60
	t.shortBreakDuration = cfg.ShortBreakDuration * 60
	t.longBreakDuration = cfg.LongBreakDuration * 60
	t.pomodorosUntilLongBreak = cfg.PomodorosUntilLongBreak
	return nil
}

func (t *Timer) State() State            { return t.state }
func (t *Timer) CompletedPomodoros() int { return t.completedPomodoros }
func (t *Timer) CurrentTaskID() *int64   { return t.currentTaskID }

// SetCurrentTask associates a task with subsequently completed work
// sessions. It does not retroactively change the attribution of a session
// already in progress when it completes — the id in effect at completion
// time wins.
func (t *Timer) SetCurrentTask(taskID *int64) {
	t.currentTaskID = taskID
}

// TimeRemaining returns the seconds left in the current session: zero when
// idle, the snapshot while paused, otherwise live wall-clock arithmetic
// floored at zero.
func (t *Timer) TimeRemaining() int {
	switch {
	case t.state == StatePaused:
		return t.pausedRemaining
	case t.state == StateIdle, t.sessionStart.IsZero():
		return 0
	}
	elapsed := int(t.now().Sub(t.sessionStart).Seconds())
	if remaining := t.duration - elapsed; remaining > 0 {
		return remaining
	}
	return 0
}

// TotalDuration returns the configured nominal duration of the current
// active state, or zero when idle or paused.
func (t *Timer) TotalDuration() int {
	switch t.state {
	case StateWorking:
		return t.workDuration
	case StateShortBreak:
		return t.shortBreakDuration
	case StateLongBreak:
		return t.longBreakDuration
	}
	return 0
}

// StartWorkSession unconditionally begins a work session.
func (t *Timer) StartWorkSession() {
	t.startSession(StateWorking, t.workDuration)
}

// StartShortBreak unconditionally begins a short break.
func (t *Timer) StartShortBreak() {
	t.startSession(StateShortBreak, t.shortBreakDuration)
}

// StartLongBreak unconditionally begins a long break.
func (t *Timer) StartLongBreak() {
	t.startSession(StateLongBreak, t.longBreakDuration)
}

// StartNextSession advances the standard pomodoro cycle: idle starts work,
// work starts a break (long once every pomodorosUntilLongBreak completed
// pomodoros), and either break starts work again.
func (t *Timer) StartNextSession() {
	switch {
	case t.state == StateIdle:
		t.StartWorkSession()
	case t.state == StateWorking:
		if (t.completedPomodoros+1)%t.pomodorosUntilLongBreak == 0 {
			t.StartLongBreak()
		} else {
			t.StartShortBreak()
		}
	case t.state.IsBreak():
		t.StartWorkSession()
	}
}

// Pause snapshots the remaining time and suspends the session. No-op unless
// the timer is active.
func (t *Timer) Pause() {
	if !t.state.IsActive() {
		return
	}
	t.pausedRemaining = t.TimeRemaining()
	t.pausedState = t.state
	t.changeState(StatePaused)
}

// Resume restarts the session that was paused, with the snapshotted
// remaining time as its new nominal duration. The paused state is
// remembered explicitly rather than inferred from the remaining time, so
// overlapping configured durations cannot resume into the wrong state.
func (t *Timer) Resume() {
	if t.state != StatePaused {
		return
	}
	t.startSession(t.pausedState, t.pausedRemaining)
	t.pausedRemaining = 0
}

// TogglePause pauses an active timer or resumes a paused one.
func (t *Timer) TogglePause() {
	if t.state == StatePaused {
		t.Resume()
	} else if t.state.IsActive() {
		t.Pause()
	}
}

// Stop clears the running session and returns to idle. The completed
// pomodoro counter survives.
func (t *Timer) Stop() {
	t.sessionStart = time.Time{}
	t.duration = 0
	t.pausedRemaining = 0
	t.changeState(StateIdle)
}

// Reset stops the timer and zeroes the completed pomodoro counter.
func (t *Timer) Reset() {
	t.Stop()
	t.completedPomodoros = 0
}

// Tick advances the timer and must be called roughly once per second while
// active; it is a no-op otherwise. It never blocks. Returns true exactly
// once per session, when the session finishes.
func (t *Timer) Tick() bool {
	if !t.state.IsActive() {
		return false
	}
	remaining := t.TimeRemaining()
	if remaining <= 0 {
		t.completeSession()
		return true
	}
	if t.OnTick != nil {
		t.OnTick(remaining)
	}
	return false
}

// FormatTime renders seconds as MM:SS. Minutes are not capped at 59.
func FormatTime(seconds int) string {
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

func (t *Timer) startSession(state State, duration int) {
	t.state = state
	t.duration = duration
	t.sessionStart = t.now()
	t.changeState(state)
}

func (t *Timer) completeSession() {
	// Only active states reach here, so the conversion cannot fail.
	sessionType, _ := SessionTypeFromState(t.state)

	duration := t.TotalDuration()
	var taskID *int64
	if t.state == StateWorking {
		taskID = t.currentTaskID
		t.completedPomodoros++
	}

	if t.OnSessionComplete != nil {
		t.OnSessionComplete(sessionType, duration, taskID)
	}
	t.Stop()
}

func (t *Timer) changeState(state State) {
	t.state = state
	if t.OnStateChange != nil {
		t.OnStateChange(state)
	}
}
