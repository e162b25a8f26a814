package pagination

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// DefaultDebounce is the pause after the last keystroke before a search is applied
const DefaultDebounce = 300 * time.Millisecond

// DebouncedMsg is delivered when the input paused long enough
type DebouncedMsg struct {
	Key  string
	ID   int
	Text string
}

// Debouncer delays search text until typing pauses. Every Trigger schedules a
// tick; only the tick of the most recent Trigger is accepted.
type Debouncer struct {
	key   string
	delay time.Duration
	id    int
}

// NewDebouncer creates a debouncer. key distinguishes debouncers that share a program.
func NewDebouncer(key string, delay time.Duration) *Debouncer {
	if delay <= 0 {
		delay = DefaultDebounce
	}
	return &Debouncer{key: key, delay: delay}
}

// Trigger schedules text to be delivered after the delay
func (d *Debouncer) Trigger(text string) tea.Cmd {
	d.id++
	id, key := d.id, d.key
	return tea.Tick(d.delay, func(time.Time) tea.Msg {
		return DebouncedMsg{Key: key, ID: id, Text: text}
	})
}

// Accept reports whether msg is the latest tick of this debouncer
func (d *Debouncer) Accept(msg DebouncedMsg) bool {
	return msg.Key == d.key && msg.ID == d.id
}
