package runaway

import (
	"fmt"

	"github.com/vovakirdan/runaway/internal/core"
)

// DefaultFallThreshold is the world Y below which the player has fallen off
// the map.
const DefaultFallThreshold = -100.0

// EventKind classifies what the collision rules found this tick.
type EventKind int

const (
	EventPlayerCaught EventKind = iota
	EventFellOffMap
	EventCoinCollected
	EventReachedFlag
)

func (k EventKind) String() string {
	switch k {
	case EventPlayerCaught:
		return "player_caught"
	case EventFellOffMap:
		return "fell_off_map"
	case EventCoinCollected:
		return "coin_collected"
	case EventReachedFlag:
		return "reached_flag"
	default:
		return "unknown"
	}
}

// Event is one rule outcome. CoinID is set for EventCoinCollected.
type Event struct {
	Kind   EventKind
	CoinID int
}

func (e Event) String() string {
	if e.Kind == EventCoinCollected {
		return fmt.Sprintf("%s(%d)", e.Kind, e.CoinID)
	}
	return e.Kind.String()
}

// Losing reports whether the event ends the run in defeat.
func (e Event) Losing() bool {
	return e.Kind == EventPlayerCaught || e.Kind == EventFellOffMap
}

// Evaluate runs the collision rules for one tick, in order: caught by an
// enemy, fell below the threshold, coins, flag. A losing event is returned
// alone and nothing else is checked. Collected coins are marked dead
// immediately, so they never trigger twice.
func Evaluate(player *Entity, enemies []*Enemy, coins []*Coin, flag core.Box, fallThreshold float64) []Event {
	pb := player.Bounds()

	for _, e := range enemies {
		if e.Alive && pb.Intersects(e.Bounds()) {
			return []Event{{Kind: EventPlayerCaught}}
		}
	}

	if player.Pos.Y < fallThreshold {
		return []Event{{Kind: EventFellOffMap}}
	}

	var events []Event
	for _, c := range coins {
		if c.Alive && pb.Intersects(c.Bounds()) {
			c.Alive = false
			events = append(events, Event{Kind: EventCoinCollected, CoinID: c.ID})
		}
	}

	if !flag.Empty() && pb.Intersects(flag) {
		events = append(events, Event{Kind: EventReachedFlag})
	}

	return events
}
