package engine

import "github.com/lixenwraith/minesim/asset"

// Background is the static image of a grid cell, always present
type Background struct {
	ID     string
	Frames asset.Frames
}

// CurrentFrame returns the displayed frame; backgrounds never animate
func (b Background) CurrentFrame() asset.Frame {
	return b.Frames.At(0)
}
