package system

import (
	"math"
	"sort"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/jungle2d/engine/internal/asset"
	"github.com/jungle2d/engine/internal/component"
	"github.com/jungle2d/engine/internal/core/ecs"
	coresys "github.com/jungle2d/engine/internal/core/system"
	"github.com/jungle2d/engine/internal/render"
)

var (
	renderKey         = ecs.NewSystemKey("render")
	renderColliderKey = ecs.NewSystemKey("render-collider")
)

// RenderSystem draws sprites in ascending z order. Phase 4 (Render).
type RenderSystem struct {
	ecs.Base
	reg    *ecs.Registry
	canvas render.Canvas
	assets *asset.Store
	camera *render.Camera
	log    *zap.Logger

	missing map[string]struct{} // textures already reported missing
	queue   []renderable
}

type renderable struct {
	t  component.Transform
	sp component.Sprite
}

func NewRenderSystem(reg *ecs.Registry, canvas render.Canvas, assets *asset.Store, camera *render.Camera, log *zap.Logger) (*RenderSystem, error) {
	s := &RenderSystem{
		reg:     reg,
		canvas:  canvas,
		assets:  assets,
		camera:  camera,
		log:     log,
		missing: make(map[string]struct{}),
	}
	if err := requireAll(reg, &s.Base,
		ecs.Require[component.Transform],
		ecs.Require[component.Sprite],
	); err != nil {
		return nil, err
	}
	return s, nil
}

func (*RenderSystem) SystemKey() ecs.SystemKey { return renderKey }

func (s *RenderSystem) Phase() coresys.Phase { return coresys.PhaseRender }

func (s *RenderSystem) Update(_ coresys.Frame) {
	s.queue = s.queue[:0]
	ecs.Each2(s.reg, s.Entities(), func(_ ecs.Entity, t *component.Transform, sp *component.Sprite) {
		s.queue = append(s.queue, renderable{t: *t, sp: *sp})
	})
	sort.SliceStable(s.queue, func(i, j int) bool {
		return s.queue[i].sp.ZIndex < s.queue[j].sp.ZIndex
	})

	viewW, viewH := s.canvas.Size()
	for _, r := range s.queue {
		glyph, err := s.assets.Texture(r.sp.AssetID)
		if err != nil {
			s.reportMissing(r.sp.AssetID, err)
			glyph = asset.Glyph{Sheet: [][]string{{"?"}}, Style: tcell.StyleDefault}
		}
		scale := r.t.ScaleOr1()
		w := int(math.Round(float64(r.sp.Width) * scale.X))
		h := int(math.Round(float64(r.sp.Height) * scale.Y))
		x, y := render.ToScreen(*s.camera, r.t.Position, r.sp.Fixed)
		if x+w <= 0 || y+h <= 0 || x >= viewW || y >= viewH {
			continue
		}
		cell := glyph.Cell(r.sp.Row, r.sp.Column)
		for row := 0; row < h; row++ {
			for col := 0; col < w; {
				col += max(s.canvas.SetCell(x+col, y+row, cell, glyph.Style), 1)
			}
		}
	}
}

func (s *RenderSystem) reportMissing(id string, err error) {
	if _, seen := s.missing[id]; seen {
		return
	}
	s.missing[id] = struct{}{}
	s.log.Warn("missing texture", zap.String("asset", id), zap.Error(err))
}

// RenderColliderSystem outlines collider boxes while the debug view is on.
// Phase 4 (Render).
type RenderColliderSystem struct {
	ecs.Base
	reg     *ecs.Registry
	canvas  render.Canvas
	camera  *render.Camera
	visible bool
}

func NewRenderColliderSystem(reg *ecs.Registry, canvas render.Canvas, camera *render.Camera) (*RenderColliderSystem, error) {
	s := &RenderColliderSystem{reg: reg, canvas: canvas, camera: camera}
	if err := requireAll(reg, &s.Base,
		ecs.Require[component.Transform],
		ecs.Require[component.BoxCollider],
	); err != nil {
		return nil, err
	}
	return s, nil
}

func (*RenderColliderSystem) SystemKey() ecs.SystemKey { return renderColliderKey }

func (s *RenderColliderSystem) Phase() coresys.Phase { return coresys.PhaseRender }

// SetVisible turns the outlines on or off.
func (s *RenderColliderSystem) SetVisible(v bool) { s.visible = v }

func (s *RenderColliderSystem) Visible() bool { return s.visible }

func (s *RenderColliderSystem) Update(_ coresys.Frame) {
	if !s.visible {
		return
	}
	style := tcell.StyleDefault.Foreground(tcell.ColorRed)
	ecs.Each2(s.reg, s.Entities(), func(_ ecs.Entity, t *component.Transform, c *component.BoxCollider) {
		b := c.Bounds(*t)
		x, y := render.ToScreen(*s.camera, component.Vec2{X: b.X, Y: b.Y}, false)
		s.canvas.DrawRect(x, y, int(math.Ceil(b.W)), int(math.Ceil(b.H)), style)
	})
}
