package data

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Level is a parsed level file: the assets it needs, its tile map and the
// entities placed on it.
type Level struct {
	Name     string       `yaml:"name"`
	Textures []TextureDef `yaml:"textures"`
	Fonts    []FontDef    `yaml:"fonts"`
	TileMap  TileMapDef   `yaml:"tilemap"`
	Entities []EntityDef  `yaml:"entities"`

	dir string // directory of the level file, for relative paths
}

// TextureDef describes a terminal texture. Each sheet row is a list of
// grapheme clusters; sprites pick a cell by row and column.
type TextureDef struct {
	ID    string     `yaml:"id"`
	Sheet [][]string `yaml:"sheet"`
	FG    string     `yaml:"fg"`
	BG    string     `yaml:"bg"`
}

type FontDef struct {
	ID        string `yaml:"id"`
	Bold      bool   `yaml:"bold"`
	Underline bool   `yaml:"underline"`
}

// TileMapDef points at a .map file of cols x rows two-digit tile codes.
type TileMapDef struct {
	Asset      string `yaml:"asset"`
	File       string `yaml:"file"`
	Cols       int    `yaml:"cols"`
	Rows       int    `yaml:"rows"`
	TileWidth  int    `yaml:"tile_width"`
	TileHeight int    `yaml:"tile_height"`
}

// Size returns the map size in world units.
func (t TileMapDef) Size() (w, h float64) {
	return float64(t.Cols * t.TileWidth), float64(t.Rows * t.TileHeight)
}

// EntityDef is a prefab. Nil sections are left off the entity.
type EntityDef struct {
	Name         string        `yaml:"name"`
	Tag          string        `yaml:"tag"`
	Group        string        `yaml:"group"`
	Transform    *TransformDef `yaml:"transform"`
	RigidBody    *VecDef       `yaml:"rigid_body"`
	Sprite       *SpriteDef    `yaml:"sprite"`
	Animation    *AnimationDef `yaml:"animation"`
	BoxCollider  *ColliderDef  `yaml:"box_collider"`
	Keyboard     *KeyboardDef  `yaml:"keyboard"`
	CameraFollow bool          `yaml:"camera_follow"`
	Health       *int          `yaml:"health"`
	Emitter      *EmitterDef   `yaml:"emitter"`
	Label        *LabelDef     `yaml:"label"`
}

type VecDef struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

type TransformDef struct {
	X        float64 `yaml:"x"`
	Y        float64 `yaml:"y"`
	ScaleX   float64 `yaml:"scale_x"`
	ScaleY   float64 `yaml:"scale_y"`
	Rotation float64 `yaml:"rotation"`
}

type SpriteDef struct {
	Asset  string `yaml:"asset"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Z      int    `yaml:"z"`
	Fixed  bool   `yaml:"fixed"`
	Row    int    `yaml:"row"`
	Column int    `yaml:"column"`
}

type AnimationDef struct {
	Frames int  `yaml:"frames"`
	Rate   int  `yaml:"rate"` // frames per second
	Loop   bool `yaml:"loop"`
}

type ColliderDef struct {
	Width   float64 `yaml:"width"`
	Height  float64 `yaml:"height"`
	OffsetX float64 `yaml:"offset_x"`
	OffsetY float64 `yaml:"offset_y"`
}

// KeyboardDef gives the velocity for each arrow key.
type KeyboardDef struct {
	Up    VecDef `yaml:"up"`
	Right VecDef `yaml:"right"`
	Down  VecDef `yaml:"down"`
	Left  VecDef `yaml:"left"`
}

type EmitterDef struct {
	VX         float64 `yaml:"vx"`
	VY         float64 `yaml:"vy"`
	RepeatMS   int     `yaml:"repeat_ms"`
	DurationMS int     `yaml:"duration_ms"`
	Damage     int     `yaml:"damage"`
	Friendly   bool    `yaml:"friendly"`
}

type LabelDef struct {
	X     float64 `yaml:"x"`
	Y     float64 `yaml:"y"`
	Text  string  `yaml:"text"`
	Font  string  `yaml:"font"`
	Color string  `yaml:"color"`
	Fixed bool    `yaml:"fixed"`
}

// LoadLevel reads and validates the level file at path.
func LoadLevel(path string) (*Level, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read level: %w", err)
	}
	var lvl Level
	if err := yaml.Unmarshal(raw, &lvl); err != nil {
		return nil, fmt.Errorf("parse level %s: %w", path, err)
	}
	if err := lvl.validate(); err != nil {
		return nil, fmt.Errorf("level %s: %w", path, err)
	}
	lvl.dir = filepath.Dir(path)
	return &lvl, nil
}

// TileMapPath resolves the tile map file relative to the level file.
func (l *Level) TileMapPath() string {
	if l.TileMap.File == "" || filepath.IsAbs(l.TileMap.File) {
		return l.TileMap.File
	}
	return filepath.Join(l.dir, l.TileMap.File)
}

// LoadTileMap reads the level's tile map. A level without one yields nil.
func (l *Level) LoadTileMap() ([][]Tile, error) {
	if l.TileMap.File == "" {
		return nil, nil
	}
	f, err := os.Open(l.TileMapPath())
	if err != nil {
		return nil, fmt.Errorf("open tile map: %w", err)
	}
	defer f.Close()
	return ParseTileMap(f, l.TileMap.Cols, l.TileMap.Rows)
}

func (l *Level) validate() error {
	textures := make(map[string]struct{}, len(l.Textures))
	for _, t := range l.Textures {
		if t.ID == "" {
			return fmt.Errorf("texture without id")
		}
		if _, dup := textures[t.ID]; dup {
			return fmt.Errorf("duplicate texture %q", t.ID)
		}
		textures[t.ID] = struct{}{}
	}
	fonts := make(map[string]struct{}, len(l.Fonts))
	for _, f := range l.Fonts {
		fonts[f.ID] = struct{}{}
	}
	if l.TileMap.File != "" {
		if l.TileMap.Cols <= 0 || l.TileMap.Rows <= 0 {
			return fmt.Errorf("tilemap needs positive cols and rows")
		}
		if l.TileMap.TileWidth <= 0 || l.TileMap.TileHeight <= 0 {
			return fmt.Errorf("tilemap needs positive tile_width and tile_height")
		}
		if _, ok := textures[l.TileMap.Asset]; !ok {
			return fmt.Errorf("tilemap uses unknown texture %q", l.TileMap.Asset)
		}
	}
	tags := make(map[string]string)
	for i, e := range l.Entities {
		name := e.Name
		if name == "" {
			name = fmt.Sprintf("#%d", i)
		}
		if e.Tag != "" {
			if other, dup := tags[e.Tag]; dup {
				return fmt.Errorf("entity %s: tag %q already used by %s", name, e.Tag, other)
			}
			tags[e.Tag] = name
		}
		if e.Sprite != nil {
			if _, ok := textures[e.Sprite.Asset]; !ok {
				return fmt.Errorf("entity %s: unknown texture %q", name, e.Sprite.Asset)
			}
		}
		if e.Label != nil && e.Label.Font != "" {
			if _, ok := fonts[e.Label.Font]; !ok {
				return fmt.Errorf("entity %s: unknown font %q", name, e.Label.Font)
			}
		}
		if e.Health != nil && (*e.Health < 0 || *e.Health > 100) {
			return fmt.Errorf("entity %s: health %d out of range", name, *e.Health)
		}
	}
	return nil
}
