package event

// ActionKind selects which timeline of an owner an action drives
type ActionKind uint8

const (
	// ActionActivity is one behavioral decision point of the owner
	ActionActivity ActionKind = iota
	// ActionAnimation advances the owner's displayed frame
	ActionAnimation
)

func (k ActionKind) String() string {
	switch k {
	case ActionActivity:
		return "activity"
	case ActionAnimation:
		return "animation"
	default:
		return "unknown"
	}
}

// Repeat is the remaining firing budget of an animation
// The zero value repeats forever
type Repeat struct {
	remaining int
}

// RepeatForever never exhausts
var RepeatForever = Repeat{}

// RepeatTimes allows n more firings, the current one included
// n < 1 is treated as a single firing
func RepeatTimes(n int) Repeat {
	if n < 1 {
		n = 1
	}
	return Repeat{remaining: n}
}

// Forever reports whether the budget is unbounded
func (r Repeat) Forever() bool {
	return r.remaining == 0
}

// Remaining returns the finite budget, 0 for forever
func (r Repeat) Remaining() int {
	return r.remaining
}

// Next consumes one firing and returns the budget for the following one
// ok is false once the budget is exhausted
func (r Repeat) Next() (next Repeat, ok bool) {
	if r.Forever() {
		return r, true
	}
	if r.remaining <= 1 {
		return Repeat{remaining: 1}, false
	}
	return Repeat{remaining: r.remaining - 1}, true
}

// Action is what fires when an owner's event comes due
type Action struct {
	Kind   ActionKind
	Repeat Repeat
}

// Activity returns an activity action
func Activity() Action {
	return Action{Kind: ActionActivity}
}

// Animation returns an animation action with the given budget
func Animation(r Repeat) Action {
	return Action{Kind: ActionAnimation, Repeat: r}
}
