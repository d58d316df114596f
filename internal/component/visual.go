package component

import (
	"time"

	"github.com/gdamore/tcell/v2"
)

// Sprite draws an asset. Row and Column select a cell of the asset's sheet;
// keyboard control picks the row, animation the column.
type Sprite struct {
	AssetID string
	Width   int // cells
	Height  int // cells
	ZIndex  int
	Fixed   bool // screen-space, ignores the camera
	Row     int
	Column  int
}

// Animation cycles Sprite.Column through NumFrames at FrameRate frames per
// second, starting at StartTime.
type Animation struct {
	NumFrames    int
	CurrentFrame int
	FrameRate    int
	Loop         bool
	StartTime    time.Duration
}

// TextLabel is a piece of text drawn by the text renderer.
type TextLabel struct {
	Position Vec2
	Text     string
	AssetID  string // font id
	Color    tcell.Color
	Fixed    bool
}
