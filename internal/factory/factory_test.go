package factory

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jungle2d/engine/internal/asset"
	"github.com/jungle2d/engine/internal/component"
	"github.com/jungle2d/engine/internal/core/ecs"
	"github.com/jungle2d/engine/internal/data"
)

func TestNewProjectile(t *testing.T) {
	reg := ecs.NewRegistry()
	em := component.ProjectileEmitter{HitPercentDamage: 10, Duration: time.Second, Friendly: true}
	e, err := NewProjectile(reg, component.Vec2{X: 1, Y: 2}, component.Vec2{X: 5}, em, 3*time.Second)
	require.NoError(t, err)

	p, err := ecs.GetComponent[component.Projectile](reg, e)
	require.NoError(t, err)
	assert.Equal(t, component.Projectile{Friendly: true, HitPercentDamage: 10, Duration: time.Second, StartTime: 3 * time.Second}, *p)
	assert.True(t, reg.BelongsToGroup(e, GroupProjectiles))
	assert.True(t, ecs.HasComponent[component.BoxCollider](reg, e))
	rb, err := ecs.GetComponent[component.RigidBody](reg, e)
	require.NoError(t, err)
	assert.Equal(t, component.Vec2{X: 5}, rb.Velocity)
}

func TestMuzzle(t *testing.T) {
	reg := ecs.NewRegistry()
	e := reg.CreateEntity()
	tr := component.Transform{Position: component.Vec2{X: 10, Y: 10}, Scale: component.Vec2{X: 2, Y: 1}}
	assert.Equal(t, component.Vec2{X: 10, Y: 10}, Muzzle(reg, e, tr))

	require.NoError(t, ecs.AddComponent(reg, e, component.Sprite{Width: 2, Height: 2}))
	assert.Equal(t, component.Vec2{X: 12, Y: 11}, Muzzle(reg, e, tr))
}

func TestSpawnLevel(t *testing.T) {
	health := 80
	lvl := &data.Level{
		Name:     "test",
		Textures: []data.TextureDef{{ID: "tiles", Sheet: [][]string{{"~"}}}, {ID: "tank", Sheet: [][]string{{"T"}}}},
		TileMap:  data.TileMapDef{Asset: "tiles", Cols: 2, Rows: 1, TileWidth: 3, TileHeight: 2},
		Entities: []data.EntityDef{
			{
				Name:        "tank",
				Group:       GroupEnemies,
				Transform:   &data.TransformDef{X: 4, Y: 1},
				Sprite:      &data.SpriteDef{Asset: "tank", Z: 1},
				BoxCollider: &data.ColliderDef{Width: 1, Height: 1},
				Health:      &health,
				Emitter:     &data.EmitterDef{VX: 5, RepeatMS: 2000, DurationMS: 3000, Damage: 10},
			},
			{Name: "chopper", Tag: TagPlayer, CameraFollow: true, Animation: &data.AnimationDef{Frames: 2, Rate: 10, Loop: true}},
		},
	}
	tiles := [][]data.Tile{{{Row: 0, Col: 0}, {Row: 1, Col: 2}}}

	store := asset.NewStore(nil)
	LoadAssets(store, lvl)
	_, err := store.Texture(BulletAsset)
	require.NoError(t, err)

	reg := ecs.NewRegistry()
	out, err := SpawnLevel(reg, lvl, tiles, 5*time.Second, zap.NewNop())
	require.NoError(t, err)
	reg.Update()

	assert.Equal(t, 2, out.Tiles)
	assert.Equal(t, 6.0, out.MapWidth)
	assert.Equal(t, 2.0, out.MapHeight)
	require.Len(t, out.Entities, 2)
	assert.Len(t, reg.GetEntitiesByGroup(GroupTiles), 2)

	second := reg.GetEntitiesByGroup(GroupTiles)[1]
	sp, err := ecs.GetComponent[component.Sprite](reg, second)
	require.NoError(t, err)
	assert.Equal(t, component.Sprite{AssetID: "tiles", Width: 3, Height: 2, Row: 1, Column: 2}, *sp)
	tr, err := ecs.GetComponent[component.Transform](reg, second)
	require.NoError(t, err)
	assert.Equal(t, component.Vec2{X: 3}, tr.Position)

	tank := out.Entities[0]
	assert.True(t, reg.BelongsToGroup(tank, GroupEnemies))
	em, err := ecs.GetComponent[component.ProjectileEmitter](reg, tank)
	require.NoError(t, err)
	assert.Equal(t, 2*time.Second, em.RepeatFrequency)
	assert.Equal(t, 5*time.Second, em.LastEmissionTime)
	h, err := ecs.GetComponent[component.Health](reg, tank)
	require.NoError(t, err)
	assert.Equal(t, 80, h.Percentage)
	tankSprite, err := ecs.GetComponent[component.Sprite](reg, tank)
	require.NoError(t, err)
	assert.Equal(t, 1, tankSprite.Width, "zero sizes default to one cell")

	player, err := reg.GetEntityByTag(TagPlayer)
	require.NoError(t, err)
	assert.Equal(t, out.Entities[1], player)
	assert.True(t, ecs.HasComponent[component.CameraFollow](reg, player))
	anim, err := ecs.GetComponent[component.Animation](reg, player)
	require.NoError(t, err)
	assert.Equal(t, 5*time.Second, anim.StartTime)
}
