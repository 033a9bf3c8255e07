package system

import (
	"errors"
	"slices"
	"testing"
	"time"

	"github.com/lixenwraith/minesim/core"
	"github.com/lixenwraith/minesim/engine"
	"github.com/lixenwraith/minesim/event"
	"github.com/lixenwraith/minesim/parameter"
	"github.com/lixenwraith/minesim/status"
)

// fixedRand always returns the same draw, clamped into range
type fixedRand int

func (r fixedRand) Intn(n int) int { return int(r) % n }

func ms(n int) time.Duration { return time.Duration(n) * time.Millisecond }

func newTestSim(rows, cols int) *Simulation {
	w := engine.NewWorld(rows, cols, engine.Background{ID: parameter.DefaultBackgroundKey})
	return New(w, Config{Rand: fixedRand(0)})
}

func mustPlace(t *testing.T, s *Simulation, e *engine.Entity) *engine.Entity {
	t.Helper()
	if err := s.Place(e); err != nil {
		t.Fatalf("Place(%s): %v", e.ID(), err)
	}
	return e
}

func mustInvariants(t *testing.T, s *Simulation) {
	t.Helper()
	if err := s.World().CheckInvariants(); err != nil {
		t.Fatalf("invariant violated at %v: %v", s.Now(), err)
	}
}

func occupantKind(s *Simulation, x, y int) (core.Kind, bool) {
	e, ok := s.World().Occupant(core.Pt(x, y))
	if !ok {
		return 0, false
	}
	return e.Kind(), true
}

func TestVeinSpawnsOreInFirstOpenCell(t *testing.T) {
	s := newTestSim(5, 5)
	vein := mustPlace(t, s, NewVein("v", core.Pt(2, 2), ms(10), nil))

	s.Drain(ms(10))

	ore, ok := s.World().Occupant(core.Pt(1, 1))
	if !ok || ore.Kind() != core.KindOre {
		t.Fatalf("no ore at (1,1)")
	}
	if ore.ID() != parameter.OreIDPrefix+"v" {
		t.Errorf("ore id = %q", ore.ID())
	}
	if ore.ActionPeriod() != parameter.OreCorruptMin {
		t.Errorf("ore period = %v, want %v with a zero draw", ore.ActionPeriod(), parameter.OreCorruptMin)
	}
	if got := s.Scheduler().Pending(vein); got != 1 {
		t.Errorf("vein pending = %d, want 1", got)
	}
	if at, _ := s.Scheduler().NextAt(); at != ms(20) {
		t.Errorf("next event at %v, want 20ms", at)
	}
	mustInvariants(t, s)
}

func TestVeinReschedulesWhenSurrounded(t *testing.T) {
	s := newTestSim(3, 3)
	vein := mustPlace(t, s, NewVein("v", core.Pt(1, 1), ms(10), nil))
	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			if x == 1 && y == 1 {
				continue
			}
			mustPlace(t, s, NewObstacle("rock", core.Pt(x, y), nil))
		}
	}

	s.Drain(ms(30))

	if n := s.World().CountKind(core.KindOre); n != 0 {
		t.Errorf("%d ore spawned with no open cell", n)
	}
	if got := s.Scheduler().Pending(vein); got != 1 {
		t.Errorf("vein pending = %d, want 1", got)
	}
}

func TestOreCorruptsIntoBlob(t *testing.T) {
	s := newTestSim(5, 5)
	ore := mustPlace(t, s, NewOre("o", core.Pt(1, 1), ms(40), nil))

	s.Drain(ms(40))

	if ore.Live() {
		t.Fatal("ore still live after its activity")
	}
	if s.Scheduler().Pending(ore) != 0 {
		t.Error("ore kept pending events")
	}
	blob, ok := s.World().Occupant(core.Pt(1, 1))
	if !ok || blob.Kind() != core.KindOreBlob {
		t.Fatal("no blob at the ore position")
	}
	if blob.ID() != "o"+parameter.BlobIDSuffix {
		t.Errorf("blob id = %q", blob.ID())
	}
	if blob.ActionPeriod() != ms(10) {
		t.Errorf("blob action period = %v, want 10ms", blob.ActionPeriod())
	}
	if blob.AnimationPeriod() != parameter.BlobAnimationMin {
		t.Errorf("blob animation period = %v", blob.AnimationPeriod())
	}
	// Activity and animation
	if got := s.Scheduler().Pending(blob); got != 2 {
		t.Errorf("blob pending = %d, want 2", got)
	}
	mustInvariants(t, s)
}

func TestMinerFullTransform(t *testing.T) {
	s := newTestSim(5, 5)
	miner := mustPlace(t, s, NewMinerNotFull("m", core.Pt(1, 1), 1, ms(10), ms(100), nil))
	ore := mustPlace(t, s, NewOre("o", core.Pt(2, 1), ms(1000), nil))

	s.Drain(ms(10))

	if miner.Live() || ore.Live() {
		t.Fatalf("miner live=%v ore live=%v, want both gone", miner.Live(), ore.Live())
	}
	full, ok := s.World().Occupant(core.Pt(1, 1))
	if !ok || full.Kind() != core.KindMinerFull {
		t.Fatal("no full miner at (1,1)")
	}
	if full.ID() != "m" || full.ResourceCount() != 1 || full.ResourceLimit() != 1 {
		t.Errorf("full miner = %q count=%d limit=%d", full.ID(), full.ResourceCount(), full.ResourceLimit())
	}
	if full.ActionPeriod() != ms(10) || full.AnimationPeriod() != ms(100) {
		t.Errorf("periods not carried over: %v %v", full.ActionPeriod(), full.AnimationPeriod())
	}
	if s.Scheduler().Pending(miner) != 0 || s.Scheduler().Pending(ore) != 0 {
		t.Error("removed entities kept pending events")
	}
	if got := s.Scheduler().Pending(full); got != 2 {
		t.Errorf("full miner pending = %d, want 2", got)
	}
	mustInvariants(t, s)
}

func TestMinerHarvestBelowLimitKeepsMining(t *testing.T) {
	s := newTestSim(5, 5)
	miner := mustPlace(t, s, NewMinerNotFull("m", core.Pt(1, 1), 2, ms(10), ms(100), nil))
	mustPlace(t, s, NewOre("o", core.Pt(2, 1), ms(1000), nil))

	s.Drain(ms(10))

	if !miner.Live() || miner.Kind() != core.KindMinerNotFull {
		t.Fatal("miner transformed before reaching its limit")
	}
	if miner.ResourceCount() != 1 {
		t.Errorf("resource count = %d, want 1", miner.ResourceCount())
	}
	if at, _ := s.Scheduler().NextAt(); at != ms(20) {
		t.Errorf("miner rescheduled at %v, want 20ms", at)
	}
}

func TestMinerFullUnloadsAtBlacksmith(t *testing.T) {
	s := newTestSim(5, 5)
	miner := mustPlace(t, s, NewMinerFull("m", core.Pt(1, 1), 2, ms(10), ms(100), nil))
	smith := mustPlace(t, s, NewBlacksmith("b", core.Pt(2, 1), nil))

	s.Drain(ms(10))

	if miner.Live() {
		t.Fatal("full miner still live")
	}
	if !smith.Live() {
		t.Error("blacksmith consumed")
	}
	empty, ok := s.World().Occupant(core.Pt(1, 1))
	if !ok || empty.Kind() != core.KindMinerNotFull {
		t.Fatal("no empty miner at (1,1)")
	}
	if empty.ResourceCount() != 0 || empty.ResourceLimit() != 2 {
		t.Errorf("count=%d limit=%d, want 0/2", empty.ResourceCount(), empty.ResourceLimit())
	}
	mustInvariants(t, s)
}

func TestMinerWalksTowardBlacksmith(t *testing.T) {
	s := newTestSim(5, 5)
	miner := mustPlace(t, s, NewMinerFull("m", core.Pt(0, 0), 1, ms(10), ms(100), nil))
	mustPlace(t, s, NewBlacksmith("b", core.Pt(4, 0), nil))

	s.Drain(ms(10))
	if miner.Position() != core.Pt(1, 0) {
		t.Fatalf("after 1 tick miner at %v, want (1,0)", miner.Position())
	}
	s.Drain(ms(30))
	if miner.Live() {
		t.Fatalf("miner at %v did not unload", miner.Position())
	}
	if k, _ := occupantKind(s, 3, 0); k != core.KindMinerNotFull {
		t.Errorf("occupant of (3,0) = %v", k)
	}
}

func TestMovementRules(t *testing.T) {
	tests := []struct {
		name     string
		mover    core.Kind
		blocker  core.Kind
		target   core.Point
		wantPos  core.Point
		crushed  bool
		blockerX int
	}{
		{"miner blocked horizontally falls back to vertical", core.KindMinerNotFull, core.KindObstacle, core.Pt(2, 2), core.Pt(0, 1), false, 1},
		{"miner blocked with no vertical offset stays", core.KindMinerNotFull, core.KindObstacle, core.Pt(2, 0), core.Pt(0, 0), false, 1},
		{"miner does not walk over ore", core.KindMinerNotFull, core.KindOre, core.Pt(3, 0), core.Pt(0, 0), false, 1},
		{"blob walks over ore", core.KindOreBlob, core.KindOre, core.Pt(3, 0), core.Pt(1, 0), true, 1},
		{"blob blocked by obstacle", core.KindOreBlob, core.KindObstacle, core.Pt(3, 0), core.Pt(0, 0), false, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestSim(5, 5)
			mover := engine.NewEntity(engine.EntityConfig{Kind: tt.mover, ID: "mover", Position: core.Pt(0, 0)})
			blocker := engine.NewEntity(engine.EntityConfig{Kind: tt.blocker, ID: "blocker", Position: core.Pt(tt.blockerX, 0)})
			s.World().Add(mover)
			s.World().Add(blocker)
			s.sched.Schedule(blocker, event.Activity(), time.Hour)

			blocked := minerBlocked
			if tt.mover == core.KindOreBlob {
				blocked = blobBlocked
			}
			s.step(mover, tt.target, blocked)

			if mover.Position() != tt.wantPos {
				t.Errorf("mover at %v, want %v", mover.Position(), tt.wantPos)
			}
			if blocker.Live() == tt.crushed {
				t.Errorf("blocker live = %v, crushed want %v", blocker.Live(), tt.crushed)
			}
			if tt.crushed && s.Scheduler().Pending(blocker) != 0 {
				t.Error("crushed occupant kept pending events")
			}
			mustInvariants(t, s)
		})
	}
}

func TestBlobConsumesVeinAndQuakeExpires(t *testing.T) {
	s := newTestSim(5, 5)
	mustPlace(t, s, NewOreBlob("b", core.Pt(1, 1), ms(10), ms(50), nil))
	vein := mustPlace(t, s, NewVein("v", core.Pt(2, 1), ms(1000), nil))

	s.Drain(ms(10))

	if vein.Live() {
		t.Fatal("vein survived an adjacent blob")
	}
	if s.Scheduler().Pending(vein) != 0 {
		t.Error("consumed vein kept pending events")
	}
	quake, ok := s.World().Occupant(core.Pt(2, 1))
	if !ok || quake.Kind() != core.KindQuake {
		t.Fatal("no quake at the vein position")
	}
	if quake.ID() != parameter.QuakeID {
		t.Errorf("quake id = %q", quake.ID())
	}

	// Spawned at 10; activity at 10+1100 regardless of animation budget
	s.Drain(ms(10) + parameter.QuakeActionPeriod - time.Millisecond)
	if !quake.Live() {
		t.Fatal("quake removed early")
	}
	s.Drain(ms(10) + parameter.QuakeActionPeriod)
	if quake.Live() {
		t.Fatal("quake survived its activity tick")
	}
	if s.Scheduler().Pending(quake) != 0 {
		t.Error("quake kept pending events")
	}
	mustInvariants(t, s)
}

func TestBlobDelaysAfterConsuming(t *testing.T) {
	s := newTestSim(5, 5)
	blob := mustPlace(t, s, NewOreBlob("b", core.Pt(1, 1), ms(10), time.Hour, nil))
	mustPlace(t, s, NewVein("v", core.Pt(2, 1), time.Hour, nil))

	s.Drain(ms(10))

	if got := s.Scheduler().Pending(blob); got != 2 {
		t.Fatalf("blob pending = %d, want activity and animation", got)
	}
	// Quake activity at 1110; the blob's next activity comes first at 10+2*10
	if at, _ := s.Scheduler().NextAt(); at != ms(30) {
		t.Errorf("next event at %v, want 30ms", at)
	}
}

func TestBlobCrushesOreOnItsWay(t *testing.T) {
	s := newTestSim(5, 5)
	blob := mustPlace(t, s, NewOreBlob("b", core.Pt(0, 0), ms(10), time.Hour, nil))
	ore := mustPlace(t, s, NewOre("o", core.Pt(1, 0), time.Hour, nil))
	vein := mustPlace(t, s, NewVein("v", core.Pt(3, 0), time.Hour, nil))

	s.Drain(ms(10))
	if ore.Live() || blob.Position() != core.Pt(1, 0) {
		t.Fatalf("blob at %v ore live=%v, want blob on the ore cell", blob.Position(), ore.Live())
	}
	if s.Scheduler().Pending(ore) != 0 {
		t.Error("crushed ore kept pending events")
	}
	if !vein.Live() {
		t.Fatal("vein consumed from distance 2")
	}

	s.Drain(ms(20))
	if vein.Live() {
		t.Fatal("vein survived once the blob became adjacent")
	}
	if k, _ := occupantKind(s, 3, 0); k != core.KindQuake {
		t.Errorf("occupant of (3,0) = %v, want quake", k)
	}
	mustInvariants(t, s)
}

func TestQuakeAnimationIsBounded(t *testing.T) {
	s := newTestSim(3, 3)
	frames := 0
	s.Router().Register(event.ListenerFunc{
		Types: []event.EventType{event.EventActionFired},
		Fn: func(ev event.GameEvent) {
			if ev.Kind == core.KindQuake && ev.Action.Kind == event.ActionAnimation {
				frames++
			}
		},
	})
	quake := mustPlace(t, s, engine.NewEntity(engine.EntityConfig{
		Kind:            core.KindQuake,
		ID:              parameter.QuakeID,
		Position:        core.Pt(1, 1),
		ActionPeriod:    time.Hour,
		AnimationPeriod: ms(10),
	}))

	s.Drain(ms(500))

	if frames != parameter.QuakeAnimationRepeatCount {
		t.Errorf("quake animated %d times, want %d", frames, parameter.QuakeAnimationRepeatCount)
	}
	if got := s.Scheduler().Pending(quake); got != 1 {
		t.Errorf("quake pending = %d, want only its activity", got)
	}
}

func TestQuakeCancelsRunningAnimation(t *testing.T) {
	s := newTestSim(3, 3)
	quake := mustPlace(t, s, engine.NewEntity(engine.EntityConfig{
		Kind:            core.KindQuake,
		ID:              parameter.QuakeID,
		Position:        core.Pt(1, 1),
		ActionPeriod:    ms(1100),
		AnimationPeriod: ms(500),
	}))

	s.Drain(ms(1100))

	if quake.Live() {
		t.Fatal("quake still live")
	}
	if s.Scheduler().Len() != 0 {
		t.Errorf("%d events left after quake removal", s.Scheduler().Len())
	}
}

func TestAnimationAdvancesFrames(t *testing.T) {
	s := newTestSim(3, 3)
	miner := mustPlace(t, s, NewMinerNotFull("m", core.Pt(1, 1), 1, time.Hour, ms(10),
		s.Images().Frames(parameter.MinerKey)))

	n := len(miner.Frames())
	s.Drain(ms(10))
	if miner.FrameIndex() != 1%n {
		t.Errorf("frame index = %d after one tick", miner.FrameIndex())
	}
	s.Drain(ms(10 * n))
	if miner.FrameIndex() != 0 {
		t.Errorf("frame index = %d after a full cycle", miner.FrameIndex())
	}
}

func TestPlace(t *testing.T) {
	s := newTestSim(3, 3)
	mustPlace(t, s, NewObstacle("a", core.Pt(1, 1), nil))

	err := s.Place(NewVein("v", core.Pt(1, 1), ms(10), nil))
	if !errors.Is(err, engine.ErrPositionOccupied) {
		t.Errorf("Place on occupied cell: err = %v", err)
	}

	outside := NewVein("far", core.Pt(7, 7), ms(10), nil)
	if err := s.Place(outside); err != nil {
		t.Errorf("Place out of bounds: err = %v, want silent", err)
	}
	if outside.Live() {
		t.Error("out of bounds entity became live")
	}
	if s.Scheduler().Len() != 0 {
		t.Errorf("%d events scheduled for rejected placements", s.Scheduler().Len())
	}
}

func TestZeroPeriodIsFloored(t *testing.T) {
	s := newTestSim(3, 3)
	vein := mustPlace(t, s, NewVein("v", core.Pt(1, 1), 0, nil))
	if vein.ActionPeriod() != parameter.MinPeriod {
		t.Fatalf("period = %v, want %v", vein.ActionPeriod(), parameter.MinPeriod)
	}
	if fired := s.Drain(ms(5)); fired != 5 {
		t.Errorf("fired %d times in 5ms, want 5", fired)
	}
}

func TestNotificationsAndCounters(t *testing.T) {
	reg := status.NewRegistry()
	router := event.NewRouter()
	w := engine.NewWorld(5, 5, engine.Background{ID: parameter.DefaultBackgroundKey})
	s := New(w, Config{Rand: fixedRand(0), Router: router, Status: reg})

	var got []event.EventType
	router.Register(event.ListenerFunc{
		Types: []event.EventType{
			event.EventEntitySpawned,
			event.EventEntityRemoved,
			event.EventOreHarvested,
			event.EventMinerTransformed,
		},
		Fn: func(ev event.GameEvent) { got = append(got, ev.Type) },
	})

	mustPlace(t, s, NewMinerNotFull("m", core.Pt(1, 1), 1, ms(10), time.Hour, nil))
	mustPlace(t, s, NewOre("o", core.Pt(2, 1), time.Hour, nil))
	s.Drain(ms(10))

	want := []event.EventType{event.EventEntityRemoved, event.EventOreHarvested, event.EventMinerTransformed}
	if !slices.Equal(got, want) {
		t.Errorf("events = %v, want %v", got, want)
	}

	snap := reg.Snapshot()
	if snap[status.OreHarvested] != 1 || snap[status.MinersTransformed] != 1 || snap[status.EntitiesRemoved] != 1 {
		t.Errorf("counters = %v", snap)
	}
	if snap[status.SchedulerFired] != 1 {
		t.Errorf("scheduler.fired = %d, want 1", snap[status.SchedulerFired])
	}
}

type traceEntry struct {
	ID     string
	Kind   core.Kind
	Pos    core.Point
	At     time.Duration
	Action event.ActionKind
}

// runScenario builds a mixed world and records every fired action
func runScenario(t *testing.T, seed uint64, until time.Duration) []traceEntry {
	t.Helper()
	w := engine.NewWorld(20, 20, engine.Background{ID: parameter.DefaultBackgroundKey})
	s := New(w, Config{Seed: seed})

	var trace []traceEntry
	s.Router().Register(event.ListenerFunc{
		Types: []event.EventType{event.EventActionFired},
		Fn: func(ev event.GameEvent) {
			trace = append(trace, traceEntry{ev.EntityID, ev.Kind, ev.Position, ev.Time, ev.Action.Kind})
		},
	})

	images := s.Images()
	mustPlace(t, s, NewVein("v1", core.Pt(10, 10), ms(700), images.Frames(parameter.VeinKey)))
	mustPlace(t, s, NewVein("v2", core.Pt(3, 15), ms(900), images.Frames(parameter.VeinKey)))
	mustPlace(t, s, NewMinerNotFull("m1", core.Pt(0, 0), 2, ms(300), ms(100), images.Frames(parameter.MinerKey)))
	mustPlace(t, s, NewMinerNotFull("m2", core.Pt(19, 19), 3, ms(400), ms(150), images.Frames(parameter.MinerKey)))
	mustPlace(t, s, NewBlacksmith("b", core.Pt(0, 19), images.Frames(parameter.BlacksmithKey)))
	mustPlace(t, s, NewOre("o", core.Pt(15, 2), ms(2000), images.Frames(parameter.OreKey)))
	for x := 5; x < 9; x++ {
		mustPlace(t, s, NewObstacle("rock", core.Pt(x, 5), images.Frames(parameter.ObstacleKey)))
	}

	for s.Now() < until {
		s.Advance(time.Second)
		mustInvariants(t, s)
	}
	return trace
}

func TestDeterministicUnderFixedSeed(t *testing.T) {
	a := runScenario(t, 42, 2*time.Minute)
	b := runScenario(t, 42, 2*time.Minute)

	if len(a) == 0 {
		t.Fatal("scenario fired nothing")
	}
	if !slices.Equal(a, b) {
		t.Errorf("traces differ: %d vs %d entries", len(a), len(b))
	}
}

func TestTraceTimesAreMonotonic(t *testing.T) {
	trace := runScenario(t, 7, time.Minute)
	for i := 1; i < len(trace); i++ {
		if trace[i].At < trace[i-1].At {
			t.Fatalf("entry %d at %v precedes previous at %v", i, trace[i].At, trace[i-1].At)
		}
	}
}

func TestSnapshotCopiesLiveEntities(t *testing.T) {
	s := newTestSim(4, 6)
	mustPlace(t, s, NewBlacksmith("b", core.Pt(0, 0), nil))
	mustPlace(t, s, NewMinerNotFull("m", core.Pt(3, 2), 4, ms(10), time.Hour, nil))
	s.Drain(ms(5))

	snap := s.Snapshot()
	if snap.Rows != 4 || snap.Cols != 6 || snap.Time != ms(5) {
		t.Errorf("header = %dx%d at %v", snap.Rows, snap.Cols, snap.Time)
	}
	if len(snap.Entities) != 2 {
		t.Fatalf("%d entities, want 2", len(snap.Entities))
	}
	if snap.Entities[0].ID != "b" || snap.Entities[1].ResourceLimit != 4 {
		t.Errorf("entities = %+v", snap.Entities)
	}

	// Later mutations do not leak into an earlier snapshot
	s.Drain(ms(10))
	if snap.Entities[1].Position != core.Pt(3, 2) {
		t.Errorf("snapshot position changed to %v", snap.Entities[1].Position)
	}
}
