package system

import (
	"math"
	"strconv"

	"github.com/gdamore/tcell/v2"

	"github.com/jungle2d/engine/internal/asset"
	"github.com/jungle2d/engine/internal/component"
	"github.com/jungle2d/engine/internal/core/ecs"
	coresys "github.com/jungle2d/engine/internal/core/system"
	"github.com/jungle2d/engine/internal/render"
)

var (
	renderHealthBarKey = ecs.NewSystemKey("render-health-bar")
	renderTextKey      = ecs.NewSystemKey("render-text")
)

// HealthBarWidth is the width of a full health bar in cells.
const HealthBarWidth = 5

// HealthColor returns the bar colour for a health percentage.
func HealthColor(pct int) tcell.Color {
	switch {
	case pct >= 0 && pct < 40:
		return tcell.ColorRed
	case pct >= 40 && pct < 80:
		return tcell.ColorYellow
	case pct >= 80 && pct <= 100:
		return tcell.ColorGreen
	}
	return tcell.ColorWhite
}

// RenderHealthBarSystem draws a bar and the percentage to the right of every
// sprite with health. Phase 4 (Render).
type RenderHealthBarSystem struct {
	ecs.Base
	reg    *ecs.Registry
	canvas render.Canvas
	camera *render.Camera
}

func NewRenderHealthBarSystem(reg *ecs.Registry, canvas render.Canvas, camera *render.Camera) (*RenderHealthBarSystem, error) {
	s := &RenderHealthBarSystem{reg: reg, canvas: canvas, camera: camera}
	if err := requireAll(reg, &s.Base,
		ecs.Require[component.Transform],
		ecs.Require[component.Sprite],
		ecs.Require[component.Health],
	); err != nil {
		return nil, err
	}
	return s, nil
}

func (*RenderHealthBarSystem) SystemKey() ecs.SystemKey { return renderHealthBarKey }

func (s *RenderHealthBarSystem) Phase() coresys.Phase { return coresys.PhaseRender }

func (s *RenderHealthBarSystem) Update(_ coresys.Frame) {
	ecs.Each3(s.reg, s.Entities(), func(_ ecs.Entity, t *component.Transform, sp *component.Sprite, h *component.Health) {
		style := tcell.StyleDefault.Foreground(HealthColor(h.Percentage))
		pos := t.Position
		pos.X += float64(sp.Width) * t.ScaleOr1().X
		x, y := render.ToScreen(*s.camera, pos, sp.Fixed)

		filled := int(math.Round(HealthBarWidth * float64(h.Percentage) / 100))
		s.canvas.FillRect(x, y, min(max(filled, 0), HealthBarWidth), 1, '█', style)
		s.canvas.DrawText(x, y+1, strconv.Itoa(h.Percentage), style)
	})
}

// RenderTextSystem draws text labels. Phase 4 (Render).
type RenderTextSystem struct {
	ecs.Base
	reg    *ecs.Registry
	canvas render.Canvas
	assets *asset.Store
	camera *render.Camera
}

func NewRenderTextSystem(reg *ecs.Registry, canvas render.Canvas, assets *asset.Store, camera *render.Camera) (*RenderTextSystem, error) {
	s := &RenderTextSystem{reg: reg, canvas: canvas, assets: assets, camera: camera}
	if err := requireAll(reg, &s.Base, ecs.Require[component.TextLabel]); err != nil {
		return nil, err
	}
	return s, nil
}

func (*RenderTextSystem) SystemKey() ecs.SystemKey { return renderTextKey }

func (s *RenderTextSystem) Phase() coresys.Phase { return coresys.PhaseRender }

func (s *RenderTextSystem) Update(_ coresys.Frame) {
	ecs.Each1(s.reg, s.Entities(), func(_ ecs.Entity, l *component.TextLabel) {
		style := tcell.StyleDefault.Foreground(l.Color)
		if f, err := s.assets.Font(l.AssetID); err == nil {
			style = f.Style(style)
		}
		x, y := render.ToScreen(*s.camera, l.Position, l.Fixed)
		s.canvas.DrawText(x, y, l.Text, style)
	})
}
