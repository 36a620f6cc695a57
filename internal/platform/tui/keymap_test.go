package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/runaway/internal/core"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestMapKey(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		name     string
		msg      tea.KeyMsg
		expected core.Action
		quit     bool
	}{
		{"w", runeKey('w'), core.ActionUp, false},
		{"up arrow", tea.KeyMsg{Type: tea.KeyUp}, core.ActionUp, false},
		{"s", runeKey('s'), core.ActionDown, false},
		{"down arrow", tea.KeyMsg{Type: tea.KeyDown}, core.ActionDown, false},
		{"a", runeKey('a'), core.ActionLeft, false},
		{"left arrow", tea.KeyMsg{Type: tea.KeyLeft}, core.ActionLeft, false},
		{"d", runeKey('d'), core.ActionRight, false},
		{"right arrow", tea.KeyMsg{Type: tea.KeyRight}, core.ActionRight, false},
		{"r", runeKey('r'), core.ActionRestart, false},
		{"p", runeKey('p'), core.ActionPause, false},
		{"b", runeKey('b'), core.ActionBack, false},
		{"esc", tea.KeyMsg{Type: tea.KeyEsc}, core.ActionBack, false},
		{"enter", tea.KeyMsg{Type: tea.KeyEnter}, core.ActionConfirm, false},
		{"q", runeKey('q'), core.ActionQuit, true},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit, true},
		{"unbound", runeKey('x'), core.ActionNone, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			action, quit := km.MapKey(tc.msg)
			if action != tc.expected || quit != tc.quit {
				t.Errorf("MapKey(%q) = (%v, %v), expected (%v, %v)", tc.msg.String(), action, quit, tc.expected, tc.quit)
			}
		})
	}
}

func TestMapKeyToMenuAction(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		msg      tea.KeyMsg
		expected MenuAction
	}{
		{runeKey('k'), MenuActionUp},
		{tea.KeyMsg{Type: tea.KeyUp}, MenuActionUp},
		{runeKey('j'), MenuActionDown},
		{tea.KeyMsg{Type: tea.KeyEnter}, MenuActionSelect},
		{tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, MenuActionSelect},
		{tea.KeyMsg{Type: tea.KeyEsc}, MenuActionBack},
		{tea.KeyMsg{Type: tea.KeyTab}, MenuActionScoreboard},
		{runeKey('q'), MenuActionQuit},
		{runeKey('x'), MenuActionNone},
	}

	for _, tc := range tests {
		if got := km.MapKeyToMenuAction(tc.msg); got != tc.expected {
			t.Errorf("MapKeyToMenuAction(%q) = %v, expected %v", tc.msg.String(), got, tc.expected)
		}
	}
}

func TestHoldTrackerFirstPressOnly(t *testing.T) {
	h := NewHoldTracker(450 * time.Millisecond)
	start := time.Unix(0, 0)

	frame := core.NewInputFrame()
	h.Press(core.ActionRight, start, &frame)
	if !frame.Has(core.ActionRight) {
		t.Fatal("first press should reach the frame")
	}

	// Key repeats keep the hold alive without new presses.
	for i := 1; i <= 5; i++ {
		frame.Clear()
		now := start.Add(time.Duration(i) * 50 * time.Millisecond)
		h.Press(core.ActionRight, now, &frame)
		h.Expire(now, &frame)
		if !frame.Empty() {
			t.Fatalf("repeat %d produced edges: %+v", i, frame)
		}
	}
	if !h.Held(core.ActionRight) {
		t.Error("Held(Right) = false while repeats arrive")
	}
}

func TestHoldTrackerReleaseAfterTimeout(t *testing.T) {
	h := NewHoldTracker(450 * time.Millisecond)
	start := time.Unix(0, 0)

	frame := core.NewInputFrame()
	h.Press(core.ActionUp, start, &frame)
	frame.Clear()

	h.Expire(start.Add(449*time.Millisecond), &frame)
	if frame.WasReleased(core.ActionUp) {
		t.Fatal("released before the timeout")
	}

	h.Expire(start.Add(450*time.Millisecond), &frame)
	if !frame.WasReleased(core.ActionUp) {
		t.Fatal("no release after the timeout")
	}
	if h.Held(core.ActionUp) {
		t.Error("Held(Up) = true after release")
	}

	// A later press starts a new hold.
	frame.Clear()
	h.Press(core.ActionUp, start.Add(time.Second), &frame)
	if !frame.Has(core.ActionUp) {
		t.Error("press after release should reach the frame")
	}
}

func TestHoldTrackerOppositeDirectionDropsHold(t *testing.T) {
	h := NewHoldTracker(450 * time.Millisecond)
	start := time.Unix(0, 0)

	frame := core.NewInputFrame()
	h.Press(core.ActionLeft, start, &frame)
	frame.Clear()

	h.Press(core.ActionRight, start.Add(100*time.Millisecond), &frame)
	if !frame.Has(core.ActionRight) {
		t.Error("new direction should be pressed")
	}
	if h.Held(core.ActionLeft) {
		t.Error("opposite direction is still held")
	}

	// The dropped key never produces a release that would stop the player.
	frame.Clear()
	h.Expire(start.Add(500*time.Millisecond), &frame)
	if frame.WasReleased(core.ActionLeft) {
		t.Error("dropped hold was released")
	}
	if !h.Held(core.ActionRight) {
		t.Error("Held(Right) = false before its own timeout")
	}
}

func TestHoldTrackerLatestDirectionWinsWithinFrame(t *testing.T) {
	h := NewHoldTracker(450 * time.Millisecond)
	start := time.Unix(0, 0)

	frame := core.NewInputFrame()
	h.Press(core.ActionRight, start, &frame)
	h.Press(core.ActionLeft, start.Add(10*time.Millisecond), &frame)

	if frame.Has(core.ActionRight) {
		t.Error("pending Right press survived a later Left press")
	}
	if !frame.Has(core.ActionLeft) {
		t.Error("Left press missing from the frame")
	}

	// Switching back restores Right as the only pending press.
	h.Press(core.ActionRight, start.Add(20*time.Millisecond), &frame)
	if frame.Has(core.ActionLeft) || !frame.Has(core.ActionRight) {
		t.Errorf("frame = %+v, expected only Right pressed", frame)
	}
}

func TestHoldTrackerPassesOtherKeys(t *testing.T) {
	h := NewHoldTracker(0)
	now := time.Unix(0, 0)

	for _, a := range []core.Action{core.ActionRestart, core.ActionPause} {
		frame := core.NewInputFrame()
		h.Press(a, now, &frame)
		h.Press(a, now, &frame)
		if !frame.Has(a) {
			t.Errorf("Press(%v) did not reach the frame", a)
		}
		if h.Held(a) {
			t.Errorf("Held(%v) = true, expected untracked", a)
		}
	}
}

func TestHoldTrackerReset(t *testing.T) {
	h := NewHoldTracker(time.Second)
	now := time.Unix(0, 0)
	frame := core.NewInputFrame()

	h.Press(core.ActionDown, now, &frame)
	h.Reset()

	frame.Clear()
	h.Expire(now.Add(2*time.Second), &frame)
	if !frame.Empty() {
		t.Errorf("Reset() left holds behind: %+v", frame)
	}
}
