package asset

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/lixenwraith/minesim/parameter"
)

// Frame is one displayable image of an animation: a glyph and its foreground color
type Frame struct {
	Glyph   rune
	R, G, B uint8
}

// Frames is an ordered, non-empty animation cycle
type Frames []Frame

// At returns the frame at index i modulo the cycle length
func (f Frames) At(i int) Frame {
	if len(f) == 0 {
		return Placeholder
	}
	i %= len(f)
	if i < 0 {
		i += len(f)
	}
	return f[i]
}

// Placeholder is returned for keys missing from the store
var Placeholder = Frame{Glyph: '?', R: 255, G: 0, B: 255}

// Store resolves image keys to frame lists
type Store struct {
	frames map[string]Frames
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{frames: make(map[string]Frames)}
}

// Add appends a frame to the cycle of key
func (s *Store) Add(key string, f Frame) {
	s.frames[key] = append(s.frames[key], f)
}

// Frames returns the frame cycle of key, never empty
func (s *Store) Frames(key string) Frames {
	if f, ok := s.frames[key]; ok && len(f) > 0 {
		return f
	}
	return Frames{Placeholder}
}

// Has reports whether key has at least one registered frame
func (s *Store) Has(key string) bool {
	return len(s.frames[key]) > 0
}

// Default returns a store with built-in glyphs for every simulation key
func Default() *Store {
	s := NewStore()
	s.Add(parameter.DefaultBackgroundKey, Frame{Glyph: '.', R: 40, G: 110, B: 40})
	s.Add("rock", Frame{Glyph: ',', R: 110, G: 110, B: 110})
	s.Add(parameter.ObstacleKey, Frame{Glyph: '#', R: 150, G: 150, B: 150})
	s.Add(parameter.BlacksmithKey, Frame{Glyph: 'B', R: 255, G: 140, B: 0})
	s.Add(parameter.VeinKey, Frame{Glyph: 'V', R: 170, G: 90, B: 220})
	s.Add(parameter.OreKey, Frame{Glyph: 'o', R: 230, G: 200, B: 60})
	for _, g := range "mM" {
		s.Add(parameter.MinerKey, Frame{Glyph: g, R: 80, G: 200, B: 255})
	}
	for _, g := range "*+x+" {
		s.Add(parameter.BlobKey, Frame{Glyph: g, R: 120, G: 255, B: 120})
	}
	for _, g := range `~≈~-` {
		s.Add(parameter.QuakeKey, Frame{Glyph: g, R: 255, G: 60, B: 60})
	}
	return s
}

// LoadListFile reads an image list from path into a fresh store
func LoadListFile(path string) (*Store, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open image list: %w", err)
	}
	defer f.Close()
	return LoadList(f)
}

// LoadList parses lines of the form "key glyph [r g b]"
// Repeated keys append frames in file order
func LoadList(r io.Reader) (*Store, error) {
	s := NewStore()
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) != 2 && len(fields) != 5 {
			return nil, fmt.Errorf("image list line %d: expected 2 or 5 fields, got %d", lineNo, len(fields))
		}

		glyph, size := utf8.DecodeRuneInString(fields[1])
		if glyph == utf8.RuneError || size != len(fields[1]) {
			return nil, fmt.Errorf("image list line %d: glyph %q must be a single character", lineNo, fields[1])
		}

		frame := Frame{Glyph: glyph, R: 255, G: 255, B: 255}
		if len(fields) == 5 {
			var rgb [3]uint8
			for i := range rgb {
				v, err := strconv.ParseUint(fields[2+i], 10, 8)
				if err != nil {
					return nil, fmt.Errorf("image list line %d: color component %q: %w", lineNo, fields[2+i], err)
				}
				rgb[i] = uint8(v)
			}
			frame.R, frame.G, frame.B = rgb[0], rgb[1], rgb[2]
		}
		s.Add(fields[0], frame)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read image list: %w", err)
	}
	return s, nil
}
