package content

import (
	"fmt"
	"strconv"
	"time"

	"github.com/lixenwraith/minesim/core"
	"github.com/lixenwraith/minesim/engine"
	"github.com/lixenwraith/minesim/parameter"
	"github.com/lixenwraith/minesim/system"
)

// Record markers, the first token of every world-file line
const (
	BackgroundMarker = "background"
	MinerMarker      = parameter.MinerKey
	ObstacleMarker   = parameter.ObstacleKey
	OreMarker        = parameter.OreKey
	SmithMarker      = parameter.BlacksmithKey
	VeinMarker       = parameter.VeinKey
)

// Token layouts per record kind
const (
	backgroundFields = 4
	backgroundID     = 1
	backgroundCol    = 2
	backgroundRow    = 3

	minerFields          = 7
	minerID              = 1
	minerCol             = 2
	minerRow             = 3
	minerLimit           = 4
	minerActionPeriod    = 5
	minerAnimationPeriod = 6

	obstacleFields = 4
	obstacleID     = 1
	obstacleCol    = 2
	obstacleRow    = 3

	oreFields       = 5
	oreID           = 1
	oreCol          = 2
	oreRow          = 3
	oreActionPeriod = 4

	smithFields = 4
	smithID     = 1
	smithCol    = 2
	smithRow    = 3

	veinFields       = 5
	veinID           = 1
	veinCol          = 2
	veinRow          = 3
	veinActionPeriod = 4
)

// ParseBackground sets the background of one cell
// accepted is false when the token count does not match a background record
func (l *Loader) ParseBackground(props []string) (accepted bool, err error) {
	if len(props) != backgroundFields {
		return false, nil
	}
	pt, err := parsePoint(props[backgroundCol], props[backgroundRow])
	if err != nil {
		return true, err
	}
	id := props[backgroundID]
	l.sim.World().SetBackground(pt, engine.Background{ID: id, Frames: l.images.Frames(id)})
	return true, nil
}

// ParseMiner places an empty miner
func (l *Loader) ParseMiner(props []string) (accepted bool, err error) {
	if len(props) != minerFields {
		return false, nil
	}
	pt, err := parsePoint(props[minerCol], props[minerRow])
	if err != nil {
		return true, err
	}
	limit, err := parseInt("resource limit", props[minerLimit])
	if err != nil {
		return true, err
	}
	if limit < 0 {
		return true, fmt.Errorf("resource limit %d is negative", limit)
	}
	action, err := parsePeriod("action period", props[minerActionPeriod])
	if err != nil {
		return true, err
	}
	animation, err := parsePeriod("animation period", props[minerAnimationPeriod])
	if err != nil {
		return true, err
	}
	e := system.NewMinerNotFull(props[minerID], pt, limit, action, animation, l.images.Frames(parameter.MinerKey))
	return true, l.sim.Place(e)
}

// ParseObstacle places an obstacle
func (l *Loader) ParseObstacle(props []string) (accepted bool, err error) {
	if len(props) != obstacleFields {
		return false, nil
	}
	pt, err := parsePoint(props[obstacleCol], props[obstacleRow])
	if err != nil {
		return true, err
	}
	e := system.NewObstacle(props[obstacleID], pt, l.images.Frames(parameter.ObstacleKey))
	return true, l.sim.Place(e)
}

// ParseOre places an ore
func (l *Loader) ParseOre(props []string) (accepted bool, err error) {
	if len(props) != oreFields {
		return false, nil
	}
	pt, err := parsePoint(props[oreCol], props[oreRow])
	if err != nil {
		return true, err
	}
	action, err := parsePeriod("action period", props[oreActionPeriod])
	if err != nil {
		return true, err
	}
	e := system.NewOre(props[oreID], pt, action, l.images.Frames(parameter.OreKey))
	return true, l.sim.Place(e)
}

// ParseSmith places a blacksmith
func (l *Loader) ParseSmith(props []string) (accepted bool, err error) {
	if len(props) != smithFields {
		return false, nil
	}
	pt, err := parsePoint(props[smithCol], props[smithRow])
	if err != nil {
		return true, err
	}
	e := system.NewBlacksmith(props[smithID], pt, l.images.Frames(parameter.BlacksmithKey))
	return true, l.sim.Place(e)
}

// ParseVein places a vein
func (l *Loader) ParseVein(props []string) (accepted bool, err error) {
	if len(props) != veinFields {
		return false, nil
	}
	pt, err := parsePoint(props[veinCol], props[veinRow])
	if err != nil {
		return true, err
	}
	action, err := parsePeriod("action period", props[veinActionPeriod])
	if err != nil {
		return true, err
	}
	e := system.NewVein(props[veinID], pt, action, l.images.Frames(parameter.VeinKey))
	return true, l.sim.Place(e)
}

func parsePoint(col, row string) (core.Point, error) {
	x, err := parseInt("col", col)
	if err != nil {
		return core.Point{}, err
	}
	y, err := parseInt("row", row)
	if err != nil {
		return core.Point{}, err
	}
	return core.Pt(x, y), nil
}

func parseInt(field, s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", field, s, err)
	}
	return n, nil
}

// parsePeriod reads a period in milliseconds of virtual time
func parsePeriod(field, s string) (time.Duration, error) {
	n, err := parseInt(field, s)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, fmt.Errorf("%s %d is negative", field, n)
	}
	return time.Duration(n) * time.Millisecond, nil
}
