package content

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/lixenwraith/minesim/core"
	"github.com/lixenwraith/minesim/engine"
	"github.com/lixenwraith/minesim/parameter"
	"github.com/lixenwraith/minesim/system"
)

func newTestLoader(rows, cols int) (*Loader, *system.Simulation) {
	w := engine.NewWorld(rows, cols, engine.Background{ID: parameter.DefaultBackgroundKey})
	sim := system.New(w, system.Config{Seed: 1})
	return NewLoader(sim), sim
}

func TestParsersAcceptOnlyExactFieldCount(t *testing.T) {
	tests := []struct {
		name  string
		parse func(*Loader, []string) (bool, error)
		line  string
		want  bool
	}{
		{"background", (*Loader).ParseBackground, "background rock 1 2", true},
		{"background short", (*Loader).ParseBackground, "background rock 1", false},
		{"miner", (*Loader).ParseMiner, "miner m1 1 1 2 500 100", true},
		{"miner long", (*Loader).ParseMiner, "miner m1 1 1 2 500 100 9", false},
		{"obstacle", (*Loader).ParseObstacle, "obstacle o1 2 2", true},
		{"obstacle as ore", (*Loader).ParseOre, "obstacle o1 2 2", false},
		{"ore", (*Loader).ParseOre, "ore ore1 3 3 20000", true},
		{"blacksmith", (*Loader).ParseSmith, "blacksmith b 0 0", true},
		{"vein", (*Loader).ParseVein, "vein v 4 4 900", true},
		{"vein short", (*Loader).ParseVein, "vein v 4 4", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, _ := newTestLoader(6, 6)
			got, err := tt.parse(l, strings.Fields(tt.line))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("accepted = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseMinerBuildsEntity(t *testing.T) {
	l, sim := newTestLoader(6, 6)
	if _, err := l.ParseMiner(strings.Fields("miner m1 2 3 4 500 120")); err != nil {
		t.Fatal(err)
	}

	e, ok := sim.World().Occupant(core.Pt(2, 3))
	if !ok {
		t.Fatal("no miner at col 2 row 3")
	}
	if e.Kind() != core.KindMinerNotFull || e.ID() != "m1" {
		t.Errorf("got %v %q", e.Kind(), e.ID())
	}
	if e.ResourceLimit() != 4 || e.ResourceCount() != 0 {
		t.Errorf("limit=%d count=%d", e.ResourceLimit(), e.ResourceCount())
	}
	if e.ActionPeriod() != 500*time.Millisecond || e.AnimationPeriod() != 120*time.Millisecond {
		t.Errorf("periods %v %v", e.ActionPeriod(), e.AnimationPeriod())
	}
	if sim.Scheduler().Pending(e) != 2 {
		t.Errorf("pending = %d, want activity and animation", sim.Scheduler().Pending(e))
	}
}

func TestParseBackgroundSetsCell(t *testing.T) {
	l, sim := newTestLoader(4, 4)
	if _, err := l.ParseBackground(strings.Fields("background rock 3 1")); err != nil {
		t.Fatal(err)
	}
	bg, ok := sim.World().BackgroundAt(core.Pt(3, 1))
	if !ok || bg.ID != "rock" {
		t.Errorf("background = %+v", bg)
	}
	if len(bg.Frames) == 0 {
		t.Error("background has no frames")
	}
}

func TestParserErrors(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{"bad col", "vein v x 1 100"},
		{"bad row", "obstacle o 1 y"},
		{"bad period", "ore o 1 1 soon"},
		{"negative period", "vein v 1 1 -5"},
		{"negative limit", "miner m 1 1 -1 100 100"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, _ := newTestLoader(4, 4)
			accepted, err := l.ProcessLine(strings.Fields(tt.line))
			if !accepted {
				t.Error("line with the right field count was not accepted")
			}
			if err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestParseOccupiedCellFails(t *testing.T) {
	l, _ := newTestLoader(4, 4)
	if _, err := l.ParseObstacle(strings.Fields("obstacle a 1 1")); err != nil {
		t.Fatal(err)
	}
	_, err := l.ParseVein(strings.Fields("vein v 1 1 100"))
	if !errors.Is(err, engine.ErrPositionOccupied) {
		t.Errorf("err = %v, want ErrPositionOccupied", err)
	}
}
