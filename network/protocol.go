package network

import (
	"io"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/lixenwraith/minesim/system"
)

// SnapshotMessage is the JSON document sent to spectators after a simulation step
type SnapshotMessage struct {
	RunID    string          `json:"runId" jsonschema:"description=ULID of the simulation run"`
	Seq      uint64          `json:"seq" jsonschema:"description=Publish counter within the run"`
	TimeMs   int64           `json:"timeMs" jsonschema:"description=Virtual time in milliseconds"`
	Rows     int             `json:"rows"`
	Cols     int             `json:"cols"`
	Entities []EntityMessage `json:"entities"`
}

// EntityMessage describes one live entity
type EntityMessage struct {
	ID            string `json:"id"`
	Kind          string `json:"kind" jsonschema:"enum=obstacle,enum=blacksmith,enum=vein,enum=ore,enum=ore_blob,enum=quake,enum=miner_not_full,enum=miner_full"`
	X             int    `json:"x"`
	Y             int    `json:"y"`
	Glyph         string `json:"glyph"`
	Color         string `json:"color" jsonschema:"pattern=^#[0-9a-f]{6}$"`
	ResourceCount int    `json:"resourceCount"`
	ResourceLimit int    `json:"resourceLimit"`
}

// NewRunID creates a ULID for a run started at t
// entropy may be a deterministic reader for reproducible ids
func NewRunID(t time.Time, entropy io.Reader) (ulid.ULID, error) {
	return ulid.New(ulid.Timestamp(t), entropy)
}

// NewSnapshotMessage converts a simulation snapshot to its wire form
func NewSnapshotMessage(runID ulid.ULID, seq uint64, snap system.Snapshot) SnapshotMessage {
	msg := SnapshotMessage{
		RunID:    runID.String(),
		Seq:      seq,
		TimeMs:   snap.Time.Milliseconds(),
		Rows:     snap.Rows,
		Cols:     snap.Cols,
		Entities: make([]EntityMessage, 0, len(snap.Entities)),
	}
	for _, e := range snap.Entities {
		msg.Entities = append(msg.Entities, EntityMessage{
			ID:            e.ID,
			Kind:          e.Kind.String(),
			X:             e.Position.X,
			Y:             e.Position.Y,
			Glyph:         string(e.Frame.Glyph),
			Color:         hexColor(e.Frame.R, e.Frame.G, e.Frame.B),
			ResourceCount: e.ResourceCount,
			ResourceLimit: e.ResourceLimit,
		})
	}
	return msg
}

func hexColor(r, g, b uint8) string {
	const digits = "0123456789abcdef"
	return string([]byte{'#',
		digits[r>>4], digits[r&0xf],
		digits[g>>4], digits[g&0xf],
		digits[b>>4], digits[b&0xf],
	})
}
