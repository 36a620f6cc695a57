package registry

import (
	"testing"

	"github.com/vovakirdan/runaway/internal/core"
)

type stubGame struct {
	id, title string
}

func (g *stubGame) ID() string                           { return g.id }
func (g *stubGame) Title() string                        { return g.title }
func (g *stubGame) Reset(core.RuntimeConfig)             {}
func (g *stubGame) Step(core.InputFrame) core.StepResult { return core.StepResult{} }
func (g *stubGame) Render(*core.Screen)                  {}
func (g *stubGame) State() core.GameState                { return core.GameState{} }

func stub(id, title string) Factory {
	return func() Game { return &stubGame{id, title} }
}

func TestRegisterAndCreate(t *testing.T) {
	Register(GameInfo{ID: "registry-test-b", Title: "Bee"}, stub("registry-test-b", "Bee"))
	Register(GameInfo{ID: "registry-test-a", Title: "Ant"}, stub("registry-test-a", "Ant"))

	if !Exists("registry-test-a") {
		t.Error("Exists() = false for a registered level")
	}
	if Exists("registry-test-missing") {
		t.Error("Exists() = true for an unknown level")
	}

	g, err := Create("registry-test-b")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if g.Title() != "Bee" {
		t.Errorf("Title() = %q, expected Bee", g.Title())
	}

	if _, err := Create("registry-test-missing"); err == nil {
		t.Error("Create() for unknown level should fail")
	}

	var ai, bi = -1, -1
	for i, info := range List() {
		switch info.ID {
		case "registry-test-a":
			ai = i
			if info.Title != "Ant" {
				t.Errorf("title = %q, expected Ant", info.Title)
			}
		case "registry-test-b":
			bi = i
		}
	}
	if ai < 0 || bi < 0 || ai > bi {
		t.Errorf("List() not sorted by ID: a=%d b=%d", ai, bi)
	}
}

func TestRegisterDoesNotCreateGames(t *testing.T) {
	created := 0
	Register(GameInfo{ID: "registry-test-lazy", Title: "Lazy"}, func() Game {
		created++
		return &stubGame{"registry-test-lazy", "Lazy"}
	})

	if created != 0 {
		t.Errorf("Register() created %d games, expected 0", created)
	}
	for range 2 {
		if _, err := Create("registry-test-lazy"); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}
	if created != 2 {
		t.Errorf("created = %d after two Create() calls, expected 2", created)
	}
}

func TestRegisterTitleDefaultsToID(t *testing.T) {
	Register(GameInfo{ID: "registry-test-untitled"}, stub("registry-test-untitled", ""))

	for _, info := range List() {
		if info.ID == "registry-test-untitled" && info.Title != "registry-test-untitled" {
			t.Errorf("Title = %q, expected the ID", info.Title)
		}
	}
}

func TestRegisterPanics(t *testing.T) {
	Register(GameInfo{ID: "registry-test-dup"}, stub("registry-test-dup", "Dup"))

	tests := []struct {
		name string
		info GameInfo
		f    Factory
	}{
		{"duplicate", GameInfo{ID: "registry-test-dup"}, stub("registry-test-dup", "Dup")},
		{"empty id", GameInfo{Title: "Nameless"}, stub("", "Nameless")},
		{"nil factory", GameInfo{ID: "registry-test-nil"}, nil},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Errorf("Register(%+v) should panic", tc.info)
				}
			}()
			Register(tc.info, tc.f)
		})
	}
}
