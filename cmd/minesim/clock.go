package main

import (
	"time"

	"github.com/lixenwraith/minesim/parameter"
)

// clock converts elapsed wall time into virtual time at an adjustable speed
type clock struct {
	speed  float64
	paused bool
	last   time.Time
}

func newClock(speed float64, now time.Time) *clock {
	return &clock{speed: speed, last: now}
}

// tick returns the virtual time elapsed since the previous tick
func (c *clock) tick(now time.Time) time.Duration {
	wall := now.Sub(c.last)
	c.last = now
	if c.paused || wall <= 0 {
		return 0
	}
	return time.Duration(float64(wall) * c.speed)
}

func (c *clock) togglePause() {
	c.paused = !c.paused
}

// faster doubles the speed up to MaxSpeed
func (c *clock) faster() {
	c.speed = min(max(c.speed*2, parameter.MinSpeed), parameter.MaxSpeed)
}

// slower halves the speed down to MinSpeed
func (c *clock) slower() {
	c.speed = max(c.speed/2, parameter.MinSpeed)
}
