package system

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/minesim/asset"
	"github.com/lixenwraith/minesim/core"
	"github.com/lixenwraith/minesim/engine"
	"github.com/lixenwraith/minesim/event"
	"github.com/lixenwraith/minesim/parameter"
	"github.com/lixenwraith/minesim/status"
	"github.com/lixenwraith/minesim/vmath"
)

// Rand is the randomness source for spawn periods
type Rand interface {
	Intn(n int) int
}

// Config wires the collaborators of a Simulation; zero fields get defaults
type Config struct {
	// Rand drives randomized periods, defaults to vmath.NewFastRand(Seed)
	Rand Rand
	Seed uint64

	// Images resolves frames for spawned entities, defaults to asset.Default()
	Images *asset.Store

	// Router receives notifications, a private router is created if nil
	Router *event.Router

	// Status receives counters, a private registry is created if nil
	Status *status.Registry
}

// Simulation runs the per-kind state machine of every entity in a World
// Single-threaded: all methods must be called from the goroutine driving Drain
type Simulation struct {
	world  *engine.World
	sched  *event.Scheduler[*engine.Entity]
	router *event.Router
	images *asset.Store
	rng    Rand
	status *status.Registry

	statSpawned     *atomic.Int64
	statRemoved     *atomic.Int64
	statTransformed *atomic.Int64
	statHarvested   *atomic.Int64
	statConsumed    *atomic.Int64
}

// New creates a simulation over world at virtual time zero
func New(world *engine.World, cfg Config) *Simulation {
	if cfg.Rand == nil {
		cfg.Rand = vmath.NewFastRand(cfg.Seed)
	}
	if cfg.Images == nil {
		cfg.Images = asset.Default()
	}
	if cfg.Router == nil {
		cfg.Router = event.NewRouter()
	}
	if cfg.Status == nil {
		cfg.Status = status.NewRegistry()
	}

	s := &Simulation{
		world:  world,
		router: cfg.Router,
		images: cfg.Images,
		rng:    cfg.Rand,
		status: cfg.Status,
	}
	s.sched = event.NewScheduler[*engine.Entity](s.execute,
		event.WithLiveness[*engine.Entity](func(e *engine.Entity) bool { return e.Live() }),
		event.WithStatus[*engine.Entity](cfg.Status),
	)

	s.statSpawned = cfg.Status.Ints.Get(status.EntitiesSpawned)
	s.statRemoved = cfg.Status.Ints.Get(status.EntitiesRemoved)
	s.statTransformed = cfg.Status.Ints.Get(status.MinersTransformed)
	s.statHarvested = cfg.Status.Ints.Get(status.OreHarvested)
	s.statConsumed = cfg.Status.Ints.Get(status.VeinsConsumed)
	return s
}

func (s *Simulation) World() *engine.World     { return s.world }
func (s *Simulation) Router() *event.Router    { return s.router }
func (s *Simulation) Images() *asset.Store     { return s.images }
func (s *Simulation) Status() *status.Registry { return s.status }

// Scheduler exposes the event queue for inspection
func (s *Simulation) Scheduler() *event.Scheduler[*engine.Entity] {
	return s.sched
}

// Now returns the virtual clock
func (s *Simulation) Now() time.Duration {
	return s.sched.Now()
}

// Drain runs every transition due at or before upTo and returns how many fired
func (s *Simulation) Drain(upTo time.Duration) int {
	return s.sched.Drain(upTo)
}

// Advance runs every transition due within d of the current clock
func (s *Simulation) Advance(d time.Duration) int {
	return s.sched.Advance(d)
}

// Place adds e to the world, failing if its cell is occupied, and schedules its actions
// Out of bounds placement is silently dropped and schedules nothing
func (s *Simulation) Place(e *engine.Entity) error {
	if err := s.world.TryAdd(e); err != nil {
		return err
	}
	if e.Live() {
		s.ScheduleActions(e)
	}
	return nil
}

// ScheduleActions queues the initial activity and animation events of e
func (s *Simulation) ScheduleActions(e *engine.Entity) {
	switch e.Kind() {
	case core.KindMinerNotFull, core.KindMinerFull, core.KindOreBlob:
		s.sched.Schedule(e, event.Activity(), e.ActionPeriod())
		s.sched.Schedule(e, event.Animation(event.RepeatForever), e.AnimationPeriod())
	case core.KindQuake:
		s.sched.Schedule(e, event.Activity(), e.ActionPeriod())
		s.sched.Schedule(e, event.Animation(event.RepeatTimes(parameter.QuakeAnimationRepeatCount)), e.AnimationPeriod())
	case core.KindOre, core.KindVein:
		s.sched.Schedule(e, event.Activity(), e.ActionPeriod())
	case core.KindObstacle, core.KindBlacksmith:
	default:
		panic(fmt.Sprintf("system: schedule for unknown kind %v", e.Kind()))
	}
}

// execute is the scheduler handler; every fired event lands here
func (s *Simulation) execute(e *engine.Entity, a event.Action) {
	if s.router.HasListeners(event.EventActionFired) {
		s.router.Emit(event.GameEvent{
			Type:     event.EventActionFired,
			EntityID: e.ID(),
			Kind:     e.Kind(),
			Position: e.Position(),
			Time:     s.sched.Now(),
			Action:   a,
		})
	}

	switch a.Kind {
	case event.ActionAnimation:
		s.animate(e, a.Repeat)
	case event.ActionActivity:
		s.activity(e)
	default:
		panic(fmt.Sprintf("system: unknown action %v", a.Kind))
	}
}

// activity dispatches to the transition of e's kind
func (s *Simulation) activity(e *engine.Entity) {
	switch e.Kind() {
	case core.KindVein:
		s.veinActivity(e)
	case core.KindOre:
		s.oreActivity(e)
	case core.KindOreBlob:
		s.blobActivity(e)
	case core.KindQuake:
		s.quakeActivity(e)
	case core.KindMinerNotFull:
		s.minerNotFullActivity(e)
	case core.KindMinerFull:
		s.minerFullActivity(e)
	case core.KindObstacle, core.KindBlacksmith:
		// Static kinds are never scheduled
	default:
		panic(fmt.Sprintf("system: activity for unknown kind %v", e.Kind()))
	}
}

// reschedule queues the next activity of e after delay
func (s *Simulation) reschedule(e *engine.Entity, delay time.Duration) {
	s.sched.Schedule(e, event.Activity(), delay)
}

// spawn adds a freshly built entity and starts its actions
func (s *Simulation) spawn(e *engine.Entity) {
	s.world.Add(e)
	if !e.Live() {
		return
	}
	s.ScheduleActions(e)
	s.statSpawned.Add(1)
	s.emit(event.EventEntitySpawned, e, e.Position())
}

// destroy cancels every pending event of e and removes it from the world
func (s *Simulation) destroy(e *engine.Entity) {
	s.sched.CancelAll(e)
	if !e.Live() {
		return
	}
	pos := e.Position()
	s.world.Remove(e)
	s.statRemoved.Add(1)
	s.emit(event.EventEntityRemoved, e, pos)
}

func (s *Simulation) emit(t event.EventType, e *engine.Entity, pos core.Point) {
	if !s.router.HasListeners(t) {
		return
	}
	s.router.Emit(event.GameEvent{
		Type:     t,
		EntityID: e.ID(),
		Kind:     e.Kind(),
		Position: pos,
		Time:     s.sched.Now(),
	})
}
