package event

import (
	"time"

	"github.com/lixenwraith/minesim/core"
)

// EventType identifies a simulation notification
type EventType int

const (
	// EventActionFired signals that an owner's action ran
	// Trigger: Simulation dispatch | Payload: Action
	EventActionFired EventType = iota

	// EventEntitySpawned signals a new entity was placed in the world
	// Trigger: vein spawn, ore -> blob, blob -> quake, miner transform
	EventEntitySpawned

	// EventEntityRemoved signals an entity left the world
	// Trigger: any transition that removes or crushes an entity
	EventEntityRemoved

	// EventOreHarvested signals a miner picked up an ore
	// Consumer: audio, metrics
	EventOreHarvested

	// EventVeinConsumed signals a blob reached and destroyed a vein
	// Consumer: audio, metrics
	EventVeinConsumed

	// EventMinerTransformed signals a miner switched between full and not-full
	// Consumer: audio, metrics
	EventMinerTransformed
)

var eventTypeNames = map[EventType]string{
	EventActionFired:      "action_fired",
	EventEntitySpawned:    "entity_spawned",
	EventEntityRemoved:    "entity_removed",
	EventOreHarvested:     "ore_harvested",
	EventVeinConsumed:     "vein_consumed",
	EventMinerTransformed: "miner_transformed",
}

func (t EventType) String() string {
	if name, ok := eventTypeNames[t]; ok {
		return name
	}
	return "unknown"
}

// GameEvent is a notification emitted after a simulation mutation
type GameEvent struct {
	Type     EventType
	EntityID string
	Kind     core.Kind
	Position core.Point
	Time     time.Duration
	Action   Action
}
