package content

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/lixenwraith/minesim/asset"
	"github.com/lixenwraith/minesim/system"
)

// ErrUnrecognizedLine is returned in strict mode for a line no parser accepts
var ErrUnrecognizedLine = errors.New("unrecognized world line")

// CommentPrefixes identify lines ignored by the loader
var CommentPrefixes = []string{"//", "#"}

// Stats summarizes one load
type Stats struct {
	Lines       int // non-blank, non-comment lines seen
	Entities    int
	Backgrounds int
	Skipped     int
}

// Loader populates a simulation from world-file records
type Loader struct {
	sim    *system.Simulation
	images *asset.Store

	// Strict aborts the load on the first unrecognized line instead of skipping it
	Strict bool
}

// NewLoader creates a loader placing entities into sim, with frames from sim's image store
func NewLoader(sim *system.Simulation) *Loader {
	return &Loader{
		sim:    sim,
		images: sim.Images(),
	}
}

// Load reads every line of src and applies it
// Parse failures and occupied-cell placements abort the load
func (l *Loader) Load(ctx context.Context, src Source) (Stats, error) {
	var stats Stats

	lines, err := src.Lines(ctx)
	if err != nil {
		return stats, fmt.Errorf("read %s: %w", src, err)
	}

	for i, line := range lines {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		if !isContentLine(line) {
			continue
		}
		stats.Lines++

		props := strings.Fields(line)
		accepted, err := l.ProcessLine(props)
		if err != nil {
			return stats, fmt.Errorf("%s line %d: %w", src, i+1, err)
		}
		if !accepted {
			if l.Strict {
				return stats, fmt.Errorf("%s line %d %q: %w", src, i+1, line, ErrUnrecognizedLine)
			}
			log.Printf("Skipping unrecognized line %d in %s: %q", i+1, src, line)
			stats.Skipped++
			continue
		}

		if props[0] == BackgroundMarker {
			stats.Backgrounds++
		} else {
			stats.Entities++
		}
	}

	return stats, nil
}

// ProcessLine dispatches props to the parser named by its marker
func (l *Loader) ProcessLine(props []string) (accepted bool, err error) {
	if len(props) == 0 {
		return false, nil
	}
	switch props[0] {
	case BackgroundMarker:
		return l.ParseBackground(props)
	case MinerMarker:
		return l.ParseMiner(props)
	case ObstacleMarker:
		return l.ParseObstacle(props)
	case OreMarker:
		return l.ParseOre(props)
	case SmithMarker:
		return l.ParseSmith(props)
	case VeinMarker:
		return l.ParseVein(props)
	}
	return false, nil
}

func isContentLine(line string) bool {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return false
	}
	for _, prefix := range CommentPrefixes {
		if strings.HasPrefix(trimmed, prefix) {
			return false
		}
	}
	return true
}
