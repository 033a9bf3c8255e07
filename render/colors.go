package render

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/minesim/asset"
)

var (
	RgbBackground = tcell.NewRGBColor(26, 27, 38)    // Tokyo Night background
	RgbStatusBar  = tcell.NewRGBColor(255, 255, 255) // White
	RgbPaused     = tcell.NewRGBColor(255, 165, 0)   // Orange
	RgbBorder     = tcell.NewRGBColor(90, 90, 110)   // Muted gray
)

// frameColor converts an asset frame color to a terminal color
func frameColor(f asset.Frame) tcell.Color {
	return tcell.NewRGBColor(int32(f.R), int32(f.G), int32(f.B))
}
