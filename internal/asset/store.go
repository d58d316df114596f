// Package asset holds the textures and fonts the renderer looks up by id.
package asset

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"
)

// Glyph is a terminal texture: a sheet of cells addressed by row and column.
// Each cell is one grapheme cluster, possibly double width.
type Glyph struct {
	Sheet [][]string
	Style tcell.Style
}

// Cell returns the grapheme at row, col, wrapping both indices. An empty
// sheet yields a blank.
func (g Glyph) Cell(row, col int) string {
	if len(g.Sheet) == 0 {
		return " "
	}
	r := g.Sheet[wrap(row, len(g.Sheet))]
	if len(r) == 0 {
		return " "
	}
	return r[wrap(col, len(r))]
}

func wrap(i, n int) int {
	i %= n
	if i < 0 {
		i += n
	}
	return i
}

// Font styles text labels.
type Font struct {
	Bold      bool
	Underline bool
}

// Style applies f on top of s.
func (f Font) Style(s tcell.Style) tcell.Style {
	return s.Bold(f.Bold).Underline(f.Underline)
}

// Store maps asset ids to textures and fonts.
type Store struct {
	textures map[string]Glyph
	fonts    map[string]Font
	log      *zap.Logger
}

func NewStore(log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{
		textures: make(map[string]Glyph),
		fonts:    make(map[string]Font),
		log:      log,
	}
}

func (s *Store) AddTexture(id string, g Glyph) {
	s.textures[id] = g
	s.log.Debug("texture added", zap.String("asset", id), zap.Int("rows", len(g.Sheet)))
}

func (s *Store) Texture(id string) (Glyph, error) {
	g, ok := s.textures[id]
	if !ok {
		return Glyph{}, fmt.Errorf("texture %q not loaded", id)
	}
	return g, nil
}

func (s *Store) AddFont(id string, f Font) {
	s.fonts[id] = f
	s.log.Debug("font added", zap.String("asset", id))
}

func (s *Store) Font(id string) (Font, error) {
	f, ok := s.fonts[id]
	if !ok {
		return Font{}, fmt.Errorf("font %q not loaded", id)
	}
	return f, nil
}

// Clear drops every asset.
func (s *Store) Clear() {
	clear(s.textures)
	clear(s.fonts)
}

// Len returns the number of textures and fonts held.
func (s *Store) Len() (textures, fonts int) { return len(s.textures), len(s.fonts) }
