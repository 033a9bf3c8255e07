package event

import "testing"

func TestRouterDeliversByTypeInRegistrationOrder(t *testing.T) {
	r := NewRouter()
	var got []string

	r.Register(ListenerFunc{
		Types: []EventType{EventVeinConsumed, EventOreHarvested},
		Fn:    func(ev GameEvent) { got = append(got, "first:"+ev.Type.String()) },
	})
	r.Register(ListenerFunc{
		Types: []EventType{EventVeinConsumed},
		Fn:    func(ev GameEvent) { got = append(got, "second:"+ev.Type.String()) },
	})

	r.Emit(GameEvent{Type: EventVeinConsumed})
	r.Emit(GameEvent{Type: EventOreHarvested})
	r.Emit(GameEvent{Type: EventEntitySpawned})

	want := []string{"first:vein_consumed", "second:vein_consumed", "first:ore_harvested"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("delivery %d = %q, want %q", i, got[i], want[i])
		}
	}
	if r.HasListeners(EventEntitySpawned) {
		t.Error("no listener registered for spawned events")
	}
}
