package timer

import (
	"strings"
	"testing"
	"time"
)

// fakeClock lets tests advance wall-clock time without sleeping.
type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time {
	return c.t
}

func (c *fakeClock) advance(d time.Duration) {
	c.t = c.t.Add(d)
}

func newTestTimer(t *testing.T, cfg Config) (*Timer, *fakeClock) {
	t.Helper()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("invalid test config: %v", err)
	}
	clock := &fakeClock{t: time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)}
	tm := New(cfg)
	tm.now = clock.now
	return tm, clock
}

// ============================================================
// Config
// ============================================================

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{"defaults", DefaultConfig(), ""},
		{"custom", Config{WorkDuration: 30, ShortBreakDuration: 10, LongBreakDuration: 20, PomodorosUntilLongBreak: 3}, ""},
		{"zero work", Config{WorkDuration: 0, ShortBreakDuration: 5, LongBreakDuration: 15, PomodorosUntilLongBreak: 4}, "work duration"},
		{"zero short break", Config{WorkDuration: 25, ShortBreakDuration: 0, LongBreakDuration: 15, PomodorosUntilLongBreak: 4}, "short break"},
		{"zero long break", Config{WorkDuration: 25, ShortBreakDuration: 5, LongBreakDuration: 0, PomodorosUntilLongBreak: 4}, "long break"},
		{"zero threshold", Config{WorkDuration: 25, ShortBreakDuration: 5, LongBreakDuration: 15, PomodorosUntilLongBreak: 0}, "pomodoros until long break"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("Validate() = %v, want error containing %q", err, tt.wantErr)
			}
		})
	}
}

// ============================================================
// States and session types
// ============================================================

func TestStateHelpers(t *testing.T) {
	for _, s := range []State{StateWorking, StateShortBreak, StateLongBreak} {
		if !s.IsActive() {
			t.Errorf("%s should be active", s)
		}
	}
	for _, s := range []State{StateIdle, StatePaused} {
		if s.IsActive() {
			t.Errorf("%s should not be active", s)
		}
	}
	if !StateShortBreak.IsBreak() || !StateLongBreak.IsBreak() {
		t.Error("break states should report IsBreak")
	}
	if StateWorking.IsBreak() || StateIdle.IsBreak() {
		t.Error("non-break states should not report IsBreak")
	}
}

func TestSessionTypeFromState(t *testing.T) {
	cases := map[State]SessionType{
		StateWorking:    SessionWork,
		StateShortBreak: SessionShortBreak,
		StateLongBreak:  SessionLongBreak,
	}
	for state, want := range cases {
		got, err := SessionTypeFromState(state)
		if err != nil {
			t.Fatalf("SessionTypeFromState(%s): %v", state, err)
		}
		if got != want {
			t.Fatalf("SessionTypeFromState(%s) = %s, want %s", state, got, want)
		}
	}

	// Idle and Paused never complete a session.
	for _, state := range []State{StateIdle, StatePaused} {
		if _, err := SessionTypeFromState(state); err == nil {
			t.Fatalf("expected error for state %s", state)
		}
	}
}

// ============================================================
// Basic transitions
// ============================================================

func TestInitialState(t *testing.T) {
	tm, _ := newTestTimer(t, DefaultConfig())
	if tm.State() != StateIdle {
		t.Fatalf("initial state = %s, want idle", tm.State())
	}
	if tm.TimeRemaining() != 0 {
		t.Fatalf("idle TimeRemaining = %d, want 0", tm.TimeRemaining())
	}
	if tm.CompletedPomodoros() != 0 {
		t.Fatal("new timer should have 0 completed pomodoros")
	}
}

func TestStartSessions(t *testing.T) {
	tm, _ := newTestTimer(t, DefaultConfig())

	tm.StartWorkSession()
	if tm.State() != StateWorking || tm.TotalDuration() != 25*60 {
		t.Fatalf("work: state=%s total=%d", tm.State(), tm.TotalDuration())
	}
	if tm.TimeRemaining() != 25*60 {
		t.Fatalf("work TimeRemaining = %d, want %d", tm.TimeRemaining(), 25*60)
	}

	tm.StartShortBreak()
	if tm.State() != StateShortBreak || tm.TotalDuration() != 5*60 {
		t.Fatalf("short break: state=%s total=%d", tm.State(), tm.TotalDuration())
	}

	tm.StartLongBreak()
	if tm.State() != StateLongBreak || tm.TotalDuration() != 15*60 {
		t.Fatalf("long break: state=%s total=%d", tm.State(), tm.TotalDuration())
	}
}

func TestStopKeepsPomodoroCount(t *testing.T) {
	tm, clock := newTestTimer(t, DefaultConfig())
	tm.StartWorkSession()
	clock.advance(25 * time.Minute)
	tm.Tick()
	if tm.CompletedPomodoros() != 1 {
		t.Fatalf("completed = %d, want 1", tm.CompletedPomodoros())
	}

	tm.StartWorkSession()
	tm.Stop()
	if tm.State() != StateIdle {
		t.Fatal("stop should return to idle")
	}
	if tm.CompletedPomodoros() != 1 {
		t.Fatal("stop should not reset the pomodoro counter")
	}

	tm.Reset()
	if tm.CompletedPomodoros() != 0 {
		t.Fatal("reset should zero the pomodoro counter")
	}
}

// ============================================================
// Wall-clock arithmetic
// ============================================================

func TestTimeRemainingTracksWallClock(t *testing.T) {
	tm, clock := newTestTimer(t, DefaultConfig())
	tm.StartWorkSession()

	clock.advance(90 * time.Second)
	if got := tm.TimeRemaining(); got != 25*60-90 {
		t.Fatalf("TimeRemaining = %d, want %d", got, 25*60-90)
	}

	// Drift immunity: a large gap (suspended process) is accounted for in
	// one step, never lost.
	clock.advance(10 * time.Minute)
	if got := tm.TimeRemaining(); got != 25*60-90-600 {
		t.Fatalf("TimeRemaining after gap = %d, want %d", got, 25*60-90-600)
	}

	clock.advance(time.Hour)
	if got := tm.TimeRemaining(); got != 0 {
		t.Fatalf("TimeRemaining floors at zero, got %d", got)
	}
}

func TestTickCompletesSessionExactlyOnce(t *testing.T) {
	tm, clock := newTestTimer(t, DefaultConfig())

	var completions int
	tm.OnSessionComplete = func(SessionType, int, *int64) { completions++ }

	tm.StartWorkSession()
	clock.advance(25 * time.Minute)

	if !tm.Tick() {
		t.Fatal("tick at zero remaining should signal completion")
	}
	if tm.State() != StateIdle {
		t.Fatalf("state after completion = %s, want idle", tm.State())
	}
	if completions != 1 {
		t.Fatalf("completions = %d, want 1", completions)
	}

	// Further ticks while idle are no-ops.
	if tm.Tick() {
		t.Fatal("tick while idle should not signal completion")
	}
	if completions != 1 {
		t.Fatalf("completions after idle tick = %d, want 1", completions)
	}
}

func TestTickEmitsRemaining(t *testing.T) {
	tm, clock := newTestTimer(t, DefaultConfig())

	var ticks []int
	tm.OnTick = func(remaining int) { ticks = append(ticks, remaining) }

	tm.StartWorkSession()
	clock.advance(1 * time.Second)
	tm.Tick()
	clock.advance(1 * time.Second)
	tm.Tick()

	if len(ticks) != 2 || ticks[0] != 25*60-1 || ticks[1] != 25*60-2 {
		t.Fatalf("ticks = %v", ticks)
	}
}

func TestTickNoOpWhenPaused(t *testing.T) {
	tm, clock := newTestTimer(t, DefaultConfig())
	tm.StartWorkSession()
	tm.Pause()

	var ticked bool
	tm.OnTick = func(int) { ticked = true }
	clock.advance(time.Hour)
	if tm.Tick() {
		t.Fatal("tick while paused should not complete")
	}
	if ticked {
		t.Fatal("tick while paused should not emit")
	}
}

// ============================================================
// Pause / resume
// ============================================================

func TestPauseSnapshotsRemaining(t *testing.T) {
	tm, clock := newTestTimer(t, DefaultConfig())
	tm.StartWorkSession()
	clock.advance(5 * time.Minute)

	tm.Pause()
	if tm.State() != StatePaused {
		t.Fatalf("state = %s, want paused", tm.State())
	}
	want := 20 * 60
	if got := tm.TimeRemaining(); got != want {
		t.Fatalf("paused TimeRemaining = %d, want %d", got, want)
	}
	if tm.TotalDuration() != 0 {
		t.Fatal("TotalDuration should be 0 while paused")
	}

	// No drift while paused, however long the gap.
	clock.advance(3 * time.Hour)
	if got := tm.TimeRemaining(); got != want {
		t.Fatalf("paused TimeRemaining after gap = %d, want %d", got, want)
	}
}

func TestResumeRestoresPausedState(t *testing.T) {
	// Long break configured shorter than a work session. Inferring the
	// resume state from the remaining-time magnitude would resume a paused
	// long break as work; remembering the state must not.
	cfg := Config{WorkDuration: 25, ShortBreakDuration: 5, LongBreakDuration: 10, PomodorosUntilLongBreak: 4}
	tm, clock := newTestTimer(t, cfg)

	tm.StartLongBreak()
	clock.advance(2 * time.Minute)
	tm.Pause()
	tm.Resume()

	if tm.State() != StateLongBreak {
		t.Fatalf("resumed state = %s, want long_break", tm.State())
	}
	if got := tm.TimeRemaining(); got != 8*60 {
		t.Fatalf("resumed TimeRemaining = %d, want %d", got, 8*60)
	}

	// The snapshot becomes the session's new nominal duration, so the
	// resumed session finishes after exactly the snapshotted time.
	clock.advance(8 * time.Minute)
	if !tm.Tick() {
		t.Fatal("resumed session should complete after snapshotted remaining")
	}
}

func TestPauseResumeNoOps(t *testing.T) {
	tm, _ := newTestTimer(t, DefaultConfig())

	tm.Pause() // idle: no-op
	if tm.State() != StateIdle {
		t.Fatal("pause while idle should be a no-op")
	}

	tm.Resume() // not paused: no-op
	if tm.State() != StateIdle {
		t.Fatal("resume while idle should be a no-op")
	}

	tm.StartWorkSession()
	tm.Resume() // active: no-op
	if tm.State() != StateWorking {
		t.Fatal("resume while active should be a no-op")
	}
}

func TestTogglePause(t *testing.T) {
	tm, _ := newTestTimer(t, DefaultConfig())
	tm.StartWorkSession()

	tm.TogglePause()
	if tm.State() != StatePaused {
		t.Fatal("toggle from active should pause")
	}
	tm.TogglePause()
	if tm.State() != StateWorking {
		t.Fatal("toggle from paused should resume")
	}
}

// ============================================================
// Pomodoro cycle
// ============================================================

func TestStartNextSessionCycle(t *testing.T) {
	cfg := DefaultConfig()
	cfg.PomodorosUntilLongBreak = 2
	tm, _ := newTestTimer(t, cfg)

	// Idle starts work.
	tm.StartNextSession()
	if tm.State() != StateWorking {
		t.Fatalf("from idle: state = %s, want working", tm.State())
	}

	// Working with no completed pomodoro yet: (0+1)%2 != 0, short break.
	tm.completedPomodoros = 0
	tm.state = StateWorking
	tm.StartNextSession()
	if tm.State() != StateShortBreak {
		t.Fatalf("after 0 completed: state = %s, want short_break", tm.State())
	}

	// Either break returns to work.
	tm.StartNextSession()
	if tm.State() != StateWorking {
		t.Fatalf("from short break: state = %s, want working", tm.State())
	}

	// Working with one completed pomodoro: (1+1)%2 == 0, long break.
	tm.completedPomodoros = 1
	tm.state = StateWorking
	tm.StartNextSession()
	if tm.State() != StateLongBreak {
		t.Fatalf("after 1 completed: state = %s, want long_break", tm.State())
	}

	tm.StartNextSession()
	if tm.State() != StateWorking {
		t.Fatalf("from long break: state = %s, want working", tm.State())
	}
}

func TestSessionCompletePayload(t *testing.T) {
	tm, clock := newTestTimer(t, DefaultConfig())

	type event struct {
		sessionType SessionType
		duration    int
		taskID      *int64
	}
	var events []event
	tm.OnSessionComplete = func(st SessionType, d int, id *int64) {
		events = append(events, event{st, d, id})
	}

	taskID := int64(7)
	tm.SetCurrentTask(&taskID)

	tm.StartWorkSession()
	clock.advance(25 * time.Minute)
	tm.Tick()

	tm.StartShortBreak()
	clock.advance(5 * time.Minute)
	tm.Tick()

	if len(events) != 2 {
		t.Fatalf("events = %d, want 2", len(events))
	}
	if events[0].sessionType != SessionWork || events[0].duration != 25*60 {
		t.Fatalf("work event = %+v", events[0])
	}
	if events[0].taskID == nil || *events[0].taskID != 7 {
		t.Fatalf("work event task = %v, want 7", events[0].taskID)
	}
	if events[1].sessionType != SessionShortBreak || events[1].taskID != nil {
		t.Fatalf("break event = %+v; breaks carry no task", events[1])
	}
}

func TestStateChangeCallbackOrder(t *testing.T) {
	tm, _ := newTestTimer(t, DefaultConfig())

	var states []State
	tm.OnStateChange = func(s State) { states = append(states, s) }

	tm.StartWorkSession()
	tm.Pause()
	tm.Stop()

	want := []State{StateWorking, StatePaused, StateIdle}
	if len(states) != len(want) {
		t.Fatalf("states = %v, want %v", states, want)
	}
	for i := range want {
		if states[i] != want[i] {
			t.Fatalf("states = %v, want %v", states, want)
		}
	}
}

func TestSetConfig(t *testing.T) {
	tm, _ := newTestTimer(t, DefaultConfig())

	cfg := Config{WorkDuration: 10, ShortBreakDuration: 2, LongBreakDuration: 20, PomodorosUntilLongBreak: 2}
	if err := tm.SetConfig(cfg); err != nil {
		t.Fatalf("SetConfig: %v", err)
	}

	tm.StartWorkSession()
	if got := tm.TimeRemaining(); got != 600 {
		t.Fatalf("TimeRemaining = %d, want 600 after reconfigure", got)
	}
}

func TestSetConfigRejectsInvalid(t *testing.T) {
	tm, _ := newTestTimer(t, DefaultConfig())

	if err := tm.SetConfig(Config{}); err == nil {
		t.Fatal("SetConfig should reject an invalid config")
	}

	// Old durations survive a rejected config.
	tm.StartWorkSession()
	if got := tm.TimeRemaining(); got != 25*60 {
		t.Fatalf("TimeRemaining = %d, want %d", got, 25*60)
	}
}

// ============================================================
// Formatting
// ============================================================

func TestFormatTime(t *testing.T) {
	tests := []struct {
		seconds int
		want    string
	}{
		{0, "00:00"},
		{59, "00:59"},
		{60, "01:00"},
		{125, "02:05"},
		{3599, "59:59"},
		{3661, "61:01"}, // minutes are not capped at 59
	}
	for _, tt := range tests {
		if got := FormatTime(tt.seconds); got != tt.want {
			t.Errorf("FormatTime(%d) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
}
