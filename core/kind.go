package core

// Kind is the closed set of entity kinds living on the grid
type Kind uint8

const (
	KindObstacle Kind = iota
	KindBlacksmith
	KindVein
	KindOre
	KindOreBlob
	KindQuake
	KindMinerNotFull
	KindMinerFull

	kindCount
)

var kindNames = [kindCount]string{
	KindObstacle:     "obstacle",
	KindBlacksmith:   "blacksmith",
	KindVein:         "vein",
	KindOre:          "ore",
	KindOreBlob:      "ore_blob",
	KindQuake:        "quake",
	KindMinerNotFull: "miner_not_full",
	KindMinerFull:    "miner_full",
}

// Kinds returns every kind in declaration order
func Kinds() []Kind {
	out := make([]Kind, kindCount)
	for i := range out {
		out[i] = Kind(i)
	}
	return out
}

// Valid reports whether k is one of the declared kinds
func (k Kind) Valid() bool {
	return k < kindCount
}

func (k Kind) String() string {
	if !k.Valid() {
		return "unknown"
	}
	return kindNames[k]
}

// IsMiner reports whether k is either miner state
func (k Kind) IsMiner() bool {
	return k == KindMinerNotFull || k == KindMinerFull
}

// Animated reports whether entities of kind k run an animation timeline
func (k Kind) Animated() bool {
	switch k {
	case KindMinerNotFull, KindMinerFull, KindOreBlob, KindQuake:
		return true
	}
	return false
}

// Active reports whether entities of kind k run an activity timeline
func (k Kind) Active() bool {
	switch k {
	case KindObstacle, KindBlacksmith:
		return false
	}
	return k.Valid()
}
