package render

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/minesim/core"
	"github.com/lixenwraith/minesim/engine"
)

// Status is the per-frame information shown under the grid
type Status struct {
	Time     time.Duration
	Speed    float64
	Paused   bool
	Entities int
	Pending  int
	Metrics  string
}

// TerminalRenderer draws the world grid and a status line onto a tcell screen
// Reads the world without mutating it; call from the goroutine that drains the simulation
type TerminalRenderer struct {
	screen tcell.Screen

	// Grid origin on screen, inside the border
	gridX, gridY int

	statusLine bool
}

// NewTerminalRenderer creates a renderer drawing at the top-left corner of screen
func NewTerminalRenderer(screen tcell.Screen, statusLine bool) *TerminalRenderer {
	return &TerminalRenderer{
		screen:     screen,
		gridX:      1,
		gridY:      1,
		statusLine: statusLine,
	}
}

// RenderFrame draws one complete frame
func (r *TerminalRenderer) RenderFrame(w *engine.World, st Status) {
	r.screen.Clear()
	defaultStyle := tcell.StyleDefault.Background(RgbBackground)
	r.screen.Fill(' ', defaultStyle)

	r.drawBorder(w, defaultStyle)
	r.drawCells(w, defaultStyle)
	if r.statusLine {
		r.drawStatusBar(w, st, defaultStyle)
	}

	r.screen.Show()
}

// drawCells draws every in-view cell: the occupant's current frame, else the background
func (r *TerminalRenderer) drawCells(w *engine.World, defaultStyle tcell.Style) {
	width, height := r.screen.Size()
	for y := 0; y < w.Rows(); y++ {
		sy := r.gridY + y
		if sy >= height {
			break
		}
		for x := 0; x < w.Cols(); x++ {
			sx := r.gridX + x
			if sx >= width {
				break
			}
			p := core.Pt(x, y)
			if e, ok := w.Occupant(p); ok {
				f := e.CurrentFrame()
				r.screen.SetContent(sx, sy, f.Glyph, nil, defaultStyle.Foreground(frameColor(f)).Bold(true))
				continue
			}
			if bg, ok := w.BackgroundAt(p); ok {
				f := bg.CurrentFrame()
				r.screen.SetContent(sx, sy, f.Glyph, nil, defaultStyle.Foreground(frameColor(f)))
			}
		}
	}
}

func (r *TerminalRenderer) drawBorder(w *engine.World, defaultStyle tcell.Style) {
	style := defaultStyle.Foreground(RgbBorder)
	left, top := r.gridX-1, r.gridY-1
	right, bottom := r.gridX+w.Cols(), r.gridY+w.Rows()

	for x := left + 1; x < right; x++ {
		r.screen.SetContent(x, top, tcell.RuneHLine, nil, style)
		r.screen.SetContent(x, bottom, tcell.RuneHLine, nil, style)
	}
	for y := top + 1; y < bottom; y++ {
		r.screen.SetContent(left, y, tcell.RuneVLine, nil, style)
		r.screen.SetContent(right, y, tcell.RuneVLine, nil, style)
	}
	r.screen.SetContent(left, top, tcell.RuneULCorner, nil, style)
	r.screen.SetContent(right, top, tcell.RuneURCorner, nil, style)
	r.screen.SetContent(left, bottom, tcell.RuneLLCorner, nil, style)
	r.screen.SetContent(right, bottom, tcell.RuneLRCorner, nil, style)
}

func (r *TerminalRenderer) drawStatusBar(w *engine.World, st Status, defaultStyle tcell.Style) {
	y := r.gridY + w.Rows() + 1
	style := defaultStyle.Foreground(RgbStatusBar)

	text := fmt.Sprintf("t=%s x%.3g entities=%d pending=%d", st.Time.Truncate(time.Millisecond), st.Speed, st.Entities, st.Pending)
	x := r.drawText(0, y, text, style)
	if st.Paused {
		r.drawText(x+1, y, "[PAUSED]", defaultStyle.Foreground(RgbPaused).Bold(true))
	}
	if st.Metrics != "" {
		r.drawText(0, y+1, st.Metrics, style.Dim(true))
	}
}

// drawText writes s starting at (x,y), clipped to the screen, and returns the column after it
func (r *TerminalRenderer) drawText(x, y int, s string, style tcell.Style) int {
	width, height := r.screen.Size()
	if y >= height {
		return x
	}
	for _, ch := range s {
		if x >= width {
			break
		}
		r.screen.SetContent(x, y, ch, nil, style)
		x++
	}
	return x
}
