// Package registry maps level IDs to game factories.
//
// Every level in the catalog is its own game: the CLI registers one factory
// per level at startup, and the menus, the scoreboard and the SSH server list
// and create games from here without knowing where the levels came from.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/runaway/internal/core"
)

// Game is one playable level as the frontends drive it.
// It holds no frontend state; the platform maps input, keeps time and
// draws the screen it renders into.
type Game interface {
	// ID is the level ID (e.g., "level-1"). Runs are stored under it.
	ID() string

	// Title is the level name shown in menus (e.g., "The Tower").
	Title() string

	// Reset starts a fresh run sized to cfg.
	Reset(cfg core.RuntimeConfig)

	// Step applies one frame of key edges and advances one tick.
	// Finished is set only on the tick the run ends.
	Step(in core.InputFrame) core.StepResult

	// Render draws the run into a cleared screen.
	Render(dst *core.Screen)

	// State returns score, elapsed time and phase.
	State() core.GameState
}

// Resizable is implemented by games that can follow a terminal resize
// without restarting.
type Resizable interface {
	Resize(cfg core.RuntimeConfig)
}

// GameInfo describes a registered level.
type GameInfo struct {
	ID    string
	Title string
}

// Factory creates a fresh game for one level.
type Factory func() Game

type entry struct {
	info    GameInfo
	factory Factory
}

var (
	mu      sync.RWMutex
	entries = make(map[string]entry)
)

// Register adds a level. It panics on an empty or duplicate ID, or a nil
// factory.
func Register(info GameInfo, f Factory) {
	if info.ID == "" {
		panic("registry: empty level ID")
	}
	if f == nil {
		panic(fmt.Sprintf("registry: nil factory for %q", info.ID))
	}
	if info.Title == "" {
		info.Title = info.ID
	}

	mu.Lock()
	defer mu.Unlock()

	if _, exists := entries[info.ID]; exists {
		panic(fmt.Sprintf("registry: level %q already registered", info.ID))
	}
	entries[info.ID] = entry{info: info, factory: f}
}

// List returns every registered level, sorted by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]GameInfo, 0, len(entries))
	for _, e := range entries {
		result = append(result, e.info)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result
}

// Create returns a new game for the level id.
func Create(id string) (Game, error) {
	mu.RLock()
	e, ok := entries[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: unknown level %q", id)
	}
	return e.factory(), nil
}

// Exists reports whether the level id is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := entries[id]
	return ok
}
