package factory

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/jungle2d/engine/internal/asset"
	"github.com/jungle2d/engine/internal/component"
	"github.com/jungle2d/engine/internal/core/ecs"
	"github.com/jungle2d/engine/internal/data"
	"github.com/jungle2d/engine/internal/render"
)

// Spawned summarises a loaded level.
type Spawned struct {
	MapWidth, MapHeight float64
	Tiles               int
	Entities            []ecs.Entity // prefabs in file order
}

// LoadAssets registers the level's textures and fonts, plus the bullet
// texture when the level does not define one.
func LoadAssets(store *asset.Store, lvl *data.Level) {
	for _, t := range lvl.Textures {
		style := tcell.StyleDefault.Foreground(render.Color(t.FG)).Background(render.Color(t.BG))
		store.AddTexture(t.ID, asset.Glyph{Sheet: t.Sheet, Style: style})
	}
	for _, f := range lvl.Fonts {
		store.AddFont(f.ID, asset.Font{Bold: f.Bold, Underline: f.Underline})
	}
	if _, err := store.Texture(BulletAsset); err != nil {
		store.AddTexture(BulletAsset, asset.Glyph{
			Sheet: [][]string{{"•"}},
			Style: tcell.StyleDefault.Foreground(tcell.ColorWhite),
		})
	}
}

// SpawnLevel creates the tile entities and every prefab of lvl. Entities are
// pending until the next registry update.
func SpawnLevel(reg *ecs.Registry, lvl *data.Level, tiles [][]data.Tile, now time.Duration, log *zap.Logger) (Spawned, error) {
	var out Spawned
	tm := lvl.TileMap
	for y, row := range tiles {
		for x, tile := range row {
			b := newBuilder(reg)
			with(b, component.Transform{
				Position: component.Vec2{X: float64(x * tm.TileWidth), Y: float64(y * tm.TileHeight)},
				Scale:    component.Vec2{X: 1, Y: 1},
			})
			with(b, component.Sprite{
				AssetID: tm.Asset,
				Width:   tm.TileWidth,
				Height:  tm.TileHeight,
				Row:     tile.Row,
				Column:  tile.Col,
			})
			b.group(GroupTiles)
			if _, err := b.done(); err != nil {
				return out, fmt.Errorf("tile %d,%d: %w", x, y, err)
			}
			out.Tiles++
		}
	}
	out.MapWidth, out.MapHeight = tm.Size()

	for i, def := range lvl.Entities {
		e, err := SpawnEntity(reg, def, now)
		if err != nil {
			return out, fmt.Errorf("entity %d (%s): %w", i, def.Name, err)
		}
		out.Entities = append(out.Entities, e)
	}
	log.Info("level spawned",
		zap.String("level", lvl.Name),
		zap.Int("tiles", out.Tiles),
		zap.Int("entities", len(out.Entities)),
		zap.Float64("map_width", out.MapWidth),
		zap.Float64("map_height", out.MapHeight))
	return out, nil
}

// SpawnEntity creates one prefab.
func SpawnEntity(reg *ecs.Registry, def data.EntityDef, now time.Duration) (ecs.Entity, error) {
	b := newBuilder(reg)
	if t := def.Transform; t != nil {
		with(b, component.Transform{
			Position: component.Vec2{X: t.X, Y: t.Y},
			Scale:    component.Vec2{X: t.ScaleX, Y: t.ScaleY},
			Rotation: t.Rotation,
		})
	}
	if rb := def.RigidBody; rb != nil {
		with(b, component.RigidBody{Velocity: component.Vec2{X: rb.X, Y: rb.Y}})
	}
	if s := def.Sprite; s != nil {
		with(b, component.Sprite{
			AssetID: s.Asset,
			Width:   max(s.Width, 1),
			Height:  max(s.Height, 1),
			ZIndex:  s.Z,
			Fixed:   s.Fixed,
			Row:     s.Row,
			Column:  s.Column,
		})
	}
	if a := def.Animation; a != nil {
		with(b, component.Animation{
			NumFrames: max(a.Frames, 1),
			FrameRate: a.Rate,
			Loop:      a.Loop,
			StartTime: now,
		})
	}
	if c := def.BoxCollider; c != nil {
		with(b, component.BoxCollider{
			Width:  c.Width,
			Height: c.Height,
			Offset: component.Vec2{X: c.OffsetX, Y: c.OffsetY},
		})
	}
	if k := def.Keyboard; k != nil {
		with(b, component.KeyboardControlled{
			Up:    component.Vec2{X: k.Up.X, Y: k.Up.Y},
			Right: component.Vec2{X: k.Right.X, Y: k.Right.Y},
			Down:  component.Vec2{X: k.Down.X, Y: k.Down.Y},
			Left:  component.Vec2{X: k.Left.X, Y: k.Left.Y},
		})
	}
	if def.CameraFollow {
		with(b, component.CameraFollow{})
	}
	if def.Health != nil {
		with(b, component.Health{Percentage: *def.Health})
	}
	if em := def.Emitter; em != nil {
		with(b, component.ProjectileEmitter{
			Velocity:         component.Vec2{X: em.VX, Y: em.VY},
			RepeatFrequency:  time.Duration(em.RepeatMS) * time.Millisecond,
			Duration:         time.Duration(em.DurationMS) * time.Millisecond,
			HitPercentDamage: em.Damage,
			Friendly:         em.Friendly,
			LastEmissionTime: now,
		})
	}
	if l := def.Label; l != nil {
		with(b, component.TextLabel{
			Position: component.Vec2{X: l.X, Y: l.Y},
			Text:     l.Text,
			AssetID:  l.Font,
			Color:    render.Color(l.Color),
			Fixed:    l.Fixed,
		})
	}
	b.tag(def.Tag)
	b.group(def.Group)
	return b.done()
}
