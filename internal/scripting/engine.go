package scripting

import (
	"fmt"
	"path/filepath"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// scriptDirs are loaded in order, so combat scripts can use helpers from core.
var scriptDirs = []string{"core", "combat"}

// Engine runs the Lua gameplay formulas. It is not safe for concurrent use;
// only the frame loop calls it.
type Engine struct {
	vm  *lua.LState
	log *zap.Logger
}

// NewEngine starts a VM and runs every .lua file under each of scriptDirs
// inside root, in name order. Missing directories are skipped.
func NewEngine(root string, log *zap.Logger) (*Engine, error) {
	if log == nil {
		log = zap.NewNop()
	}
	e := &Engine{vm: lua.NewState(), log: log}
	e.vm.SetGlobal("API_VERSION", lua.LNumber(1))
	for _, sub := range scriptDirs {
		if err := e.runDir(filepath.Join(root, sub)); err != nil {
			e.vm.Close()
			return nil, fmt.Errorf("%s scripts: %w", sub, err)
		}
	}
	return e, nil
}

func (e *Engine) runDir(dir string) error {
	files, err := filepath.Glob(filepath.Join(dir, "*.lua"))
	if err != nil {
		return err
	}
	for _, f := range files {
		if err := e.vm.DoFile(f); err != nil {
			return fmt.Errorf("run %s: %w", f, err)
		}
		e.log.Debug("lua script loaded", zap.String("file", f))
	}
	return nil
}

// DamageContext holds the inputs of a projectile hit.
type DamageContext struct {
	HitPercentDamage int  // the projectile's nominal damage
	TargetHealth     int  // target health before the hit
	TargetIsPlayer   bool
	Friendly         bool // projectile fired by the player
}

// CalcProjectileDamage calls the Lua calc_projectile_damage function and
// returns the health to subtract. When the function is missing or fails the
// nominal HitPercentDamage is used.
func (e *Engine) CalcProjectileDamage(ctx DamageContext) int {
	fallback := ctx.HitPercentDamage
	fn := e.vm.GetGlobal("calc_projectile_damage")
	if fn == lua.LNil {
		return fallback
	}

	t := e.vm.NewTable()
	t.RawSetString("damage", lua.LNumber(ctx.HitPercentDamage))
	t.RawSetString("health", lua.LNumber(ctx.TargetHealth))
	t.RawSetString("target_is_player", lua.LBool(ctx.TargetIsPlayer))
	t.RawSetString("friendly", lua.LBool(ctx.Friendly))

	if err := e.vm.CallByParam(lua.P{Fn: fn, NRet: 1, Protect: true}, t); err != nil {
		e.log.Error("calc_projectile_damage failed", zap.Error(err))
		return fallback
	}
	ret := e.vm.Get(-1)
	e.vm.Pop(1)

	out, ok := ret.(*lua.LTable)
	if !ok {
		e.log.Error("calc_projectile_damage must return a table", zap.String("got", ret.Type().String()))
		return fallback
	}
	return max(lInt(out, "damage"), 0)
}

// HasFunc reports whether a global Lua function is defined.
func (e *Engine) HasFunc(name string) bool {
	_, ok := e.vm.GetGlobal(name).(*lua.LFunction)
	return ok
}

// lInt reads an integer field from a Lua table.
func lInt(t *lua.LTable, key string) int {
	return int(lua.LVAsNumber(t.RawGetString(key)))
}

// Close shuts down the Lua VM.
func (e *Engine) Close() {
	e.vm.Close()
}
