// Package sound rings the terminal bell for timer events. The bell works
// everywhere without external dependencies; richer audio is deliberately
// out of scope.
package sound

import "io"

const bell = "\a"

// Notifier writes BEL sequences to the terminal. Distinct events ring a
// distinct number of bells so they are tellable apart by ear.
type Notifier struct {
	w       io.Writer
	enabled bool
}

func NewNotifier(w io.Writer) *Notifier {
	return &Notifier{w: w, enabled: true}
}

func (n *Notifier) Enable()  { n.enabled = true }
func (n *Notifier) Disable() { n.enabled = false }

func (n *Notifier) Enabled() bool {
	return n.enabled
}

// SetEnabled switches notifications on or off.
func (n *Notifier) SetEnabled(enabled bool) {
	n.enabled = enabled
}

// PlayWorkComplete rings three bells.
func (n *Notifier) PlayWorkComplete() {
	n.ring(3)
}

// PlayBreakComplete rings one bell.
func (n *Notifier) PlayBreakComplete() {
	n.ring(1)
}

// PlaySessionStart rings two bells.
func (n *Notifier) PlaySessionStart() {
	n.ring(2)
}

func (n *Notifier) ring(count int) {
	if !n.enabled {
		return
	}
	for i := 0; i < count; i++ {
		io.WriteString(n.w, bell)
	}
}
