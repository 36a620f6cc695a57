package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/runaway/internal/core"
)

// DefaultReleaseAfter is how long a held key may go without a repeat before
// the terminal frontend treats it as released.
const DefaultReleaseAfter = 450 * time.Millisecond

// GameKeyMap holds the in-game key bindings.
type GameKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Left    key.Binding
	Right   key.Binding
	Restart key.Binding
	Pause   key.Binding
	Back    key.Binding
	Quit    key.Binding
	Confirm key.Binding
}

// DefaultGameKeyMap returns the default in-game bindings.
func DefaultGameKeyMap() GameKeyMap {
	return GameKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "w"),
			key.WithHelp("↑/w", "jump/climb"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "s"),
			key.WithHelp("↓/s", "climb down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "a"),
			key.WithHelp("←/a", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "d"),
			key.WithHelp("→/d", "right"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "restart"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "pause"),
		),
		Back: key.NewBinding(
			key.WithKeys("b", "esc"),
			key.WithHelp("b/esc", "menu"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
		),
	}
}

// KeyMapper translates Bubble Tea key messages to game actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct {
	keys GameKeyMap
}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{keys: DefaultGameKeyMap()}
}

// MapKey translates a key message to an action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	k := km.keys
	switch {
	case key.Matches(msg, k.Quit):
		return core.ActionQuit, true
	case key.Matches(msg, k.Up):
		return core.ActionUp, false
	case key.Matches(msg, k.Down):
		return core.ActionDown, false
	case key.Matches(msg, k.Left):
		return core.ActionLeft, false
	case key.Matches(msg, k.Right):
		return core.ActionRight, false
	case key.Matches(msg, k.Restart):
		return core.ActionRestart, false
	case key.Matches(msg, k.Pause):
		return core.ActionPause, false
	case key.Matches(msg, k.Back):
		return core.ActionBack, false
	case key.Matches(msg, k.Confirm):
		return core.ActionConfirm, false
	}
	return core.ActionNone, false
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionQuit
	MenuActionScoreboard
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k": // vim-style k for up
		return MenuActionUp
	case "s", "down", "j": // vim-style j for down
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	case "tab":
		return MenuActionScoreboard
	}
	return MenuActionNone
}

// holdable reports whether a key is tracked as held between repeats.
func holdable(a core.Action) bool {
	switch a {
	case core.ActionUp, core.ActionDown, core.ActionLeft, core.ActionRight:
		return true
	}
	return false
}

func opposite(a core.Action) core.Action {
	switch a {
	case core.ActionLeft:
		return core.ActionRight
	case core.ActionRight:
		return core.ActionLeft
	}
	return core.ActionNone
}

// HoldTracker turns the terminal's stream of key repeats into press and
// release edges. A terminal only reports key presses; holding a key yields a
// burst of repeats and letting go yields nothing.
type HoldTracker struct {
	releaseAfter time.Duration
	lastSeen     map[core.Action]time.Time
}

// NewHoldTracker creates a tracker. A non-positive releaseAfter selects
// DefaultReleaseAfter.
func NewHoldTracker(releaseAfter time.Duration) *HoldTracker {
	if releaseAfter <= 0 {
		releaseAfter = DefaultReleaseAfter
	}
	return &HoldTracker{
		releaseAfter: releaseAfter,
		lastSeen:     make(map[core.Action]time.Time),
	}
}

// Press records a key press at now and writes the resulting edges to frame.
// Only the first press of a hold reaches the frame. Pressing a horizontal
// direction drops the hold of the opposite one without a release, along with
// any press of it still pending in frame, so the latest direction wins.
func (h *HoldTracker) Press(a core.Action, now time.Time, frame *core.InputFrame) {
	if !holdable(a) {
		frame.Set(a)
		return
	}
	if _, held := h.lastSeen[a]; !held {
		frame.Set(a)
	}
	h.lastSeen[a] = now
	if o := opposite(a); o != core.ActionNone {
		delete(h.lastSeen, o)
		frame.Unset(o)
	}
}

// Expire releases every key that has not repeated within the timeout.
func (h *HoldTracker) Expire(now time.Time, frame *core.InputFrame) {
	for a, seen := range h.lastSeen {
		if now.Sub(seen) >= h.releaseAfter {
			frame.Release(a)
			delete(h.lastSeen, a)
		}
	}
}

// Held reports whether a key is currently considered held.
func (h *HoldTracker) Held(a core.Action) bool {
	_, ok := h.lastSeen[a]
	return ok
}

// Reset forgets every hold without emitting releases.
func (h *HoldTracker) Reset() {
	clear(h.lastSeen)
}
