package registry

import (
	"testing"

	"github.com/vovakirdan/tui-rhythm/internal/core"
)

type stubGame struct{ id string }

func (g stubGame) ID() string                           { return g.id }
func (g stubGame) Title() string                        { return "Stub " + g.id }
func (g stubGame) Reset(core.RuntimeConfig)             {}
func (g stubGame) Step(core.InputFrame) core.StepResult { return core.StepResult{} }
func (g stubGame) Render(*core.Screen)                  {}
func (g stubGame) State() core.GameState                { return core.GameState{} }

func TestRegisterAndCreate(t *testing.T) {
	Register("zz_stub", func() Game { return stubGame{id: "zz_stub"} })
	Register("aa_stub", func() Game { return stubGame{id: "aa_stub"} })

	if !Exists("zz_stub") {
		t.Fatal("Expected zz_stub to exist")
	}
	g, err := Create("zz_stub")
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if g.ID() != "zz_stub" {
		t.Errorf("Expected zz_stub, got %s", g.ID())
	}

	list := List()
	if len(list) < 2 || list[0].ID != "aa_stub" {
		t.Errorf("Expected a list sorted by id, got %+v", list)
	}
	if list[0].Title != "Stub aa_stub" {
		t.Errorf("Expected the title from the factory, got %q", list[0].Title)
	}
}

func TestCreateUnknown(t *testing.T) {
	if _, err := Create("missing"); err == nil {
		t.Error("Expected an error for an unknown game")
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register("dup_stub", func() Game { return stubGame{id: "dup_stub"} })
	defer func() {
		if recover() == nil {
			t.Error("Expected a panic on duplicate registration")
		}
	}()
	Register("dup_stub", func() Game { return stubGame{id: "dup_stub"} })
}
