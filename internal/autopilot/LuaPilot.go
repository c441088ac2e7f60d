// Package autopilot steers a snake from a Lua script. The script plays the
// same role as a keyboard: it only ever requests directions.
package autopilot

import (
	"errors"
	"fmt"
	"os"

	"github.com/Mshel/gridsnake/internal/game"
	lua "github.com/yuin/gopher-lua"
)

// Builtin selects the embedded greedy script instead of a file.
const Builtin = "builtin"

const entryPoint = "next_direction"

// DefaultScript walks toward the food and never steps into a wall or the body
// when another move is available.
const DefaultScript = `
local order = { "up", "down", "left", "right" }
local deltas = { up = {0, -1}, down = {0, 1}, left = {-1, 0}, right = {1, 0} }
local opposite = { up = "down", down = "up", left = "right", right = "left" }

local function blocked(state, x, y)
	if x < 0 or y < 0 or x >= state.grid_size or y >= state.grid_size then
		return true
	end
	for _, segment in ipairs(state.body) do
		if segment.x == x and segment.y == y then
			return true
		end
	end
	return false
end

function next_direction(state)
	local best, bestDistance = state.direction, nil
	for _, name in ipairs(order) do
		if name ~= opposite[state.direction] then
			local d = deltas[name]
			local x, y = state.head.x + d[1], state.head.y + d[2]
			if not blocked(state, x, y) then
				local distance = math.abs(x - state.food.x) + math.abs(y - state.food.y)
				if bestDistance == nil or distance < bestDistance then
					best, bestDistance = name, distance
				end
			end
		end
	end
	return best
end
`

var ErrNoEntryPoint = errors.New("script does not define " + entryPoint)

// LuaPilot keeps one Lua state alive for a session. It is not safe for
// concurrent use.
type LuaPilot struct {
	state *lua.LState
	fn    lua.LValue
}

func NewLuaPilot(script string) (*LuaPilot, error) {
	luaState := lua.NewState()
	if err := luaState.DoString(script); err != nil {
		luaState.Close()
		return nil, fmt.Errorf("could not parse lua script: %w", err)
	}

	fn := luaState.GetGlobal(entryPoint)
	if fn.Type() != lua.LTFunction {
		luaState.Close()
		return nil, ErrNoEntryPoint
	}

	return &LuaPilot{state: luaState, fn: fn}, nil
}

// LoadLuaPilot reads the script at path, or the embedded one for Builtin.
func LoadLuaPilot(path string) (*LuaPilot, error) {
	if path == Builtin {
		return NewLuaPilot(DefaultScript)
	}
	script, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read autopilot script: %w", err)
	}
	return NewLuaPilot(string(script))
}

// NextDirection asks the script for a heading given the latest snapshot.
func (p *LuaPilot) NextDirection(snapshot game.RenderSnapshot) (game.Direction, error) {
	err := p.state.CallByParam(lua.P{
		Fn:      p.fn,
		NRet:    1,
		Protect: true,
	}, p.snapshotTable(snapshot))
	if err != nil {
		return 0, fmt.Errorf("could not execute lua script: %w", err)
	}

	ret := p.state.Get(-1)
	p.state.Pop(1)

	if ret.Type() != lua.LTString {
		return 0, fmt.Errorf("lua returned %s, expected string", ret.Type().String())
	}
	return game.ParseDirection(lua.LVAsString(ret))
}

func (p *LuaPilot) Close() {
	p.state.Close()
}

func (p *LuaPilot) snapshotTable(snapshot game.RenderSnapshot) *lua.LTable {
	tbl := p.state.NewTable()
	tbl.RawSetString("grid_size", lua.LNumber(snapshot.GridSize))
	tbl.RawSetString("direction", lua.LString(snapshot.Direction.String()))
	tbl.RawSetString("score", lua.LNumber(snapshot.Score))
	tbl.RawSetString("head", p.positionTable(snapshot.Head()))
	tbl.RawSetString("food", p.positionTable(snapshot.Food))

	body := p.state.NewTable()
	for _, segment := range snapshot.Snake {
		body.Append(p.positionTable(segment))
	}
	tbl.RawSetString("body", body)
	return tbl
}

func (p *LuaPilot) positionTable(pos game.Position) *lua.LTable {
	tbl := p.state.NewTable()
	tbl.RawSetString("x", lua.LNumber(pos.X))
	tbl.RawSetString("y", lua.LNumber(pos.Y))
	return tbl
}
