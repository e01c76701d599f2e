package scripting

import (
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/cplax14/sawyers-rpg-game-sub003/internal/game/breeding"
	"github.com/cplax14/sawyers-rpg-game-sub003/internal/game/creature"
)

// registerModules installs the engine global table into L:
//
//	engine.log(level, msg)       writes to the host logger
//	engine.trait_slots(gen)      number of trait slots at a generation
//	engine.max_traits            absolute trait cap
//	engine.max_generation        highest reachable generation
func registerModules(L *lua.LState, logger *zap.Logger, script string) {
	engine := L.NewTable()
	L.SetField(engine, "log", L.NewFunction(func(L *lua.LState) int {
		level := L.CheckString(1)
		msg := L.CheckString(2)
		fields := []zap.Field{zap.String("script", script)}
		switch level {
		case "debug":
			logger.Debug(msg, fields...)
		case "warn":
			logger.Warn(msg, fields...)
		case "error":
			logger.Error(msg, fields...)
		default:
			logger.Info(msg, fields...)
		}
		return 0
	}))
	L.SetField(engine, "trait_slots", L.NewFunction(func(L *lua.LState) int {
		L.Push(lua.LNumber(breeding.TraitSlots(L.CheckInt(1))))
		return 1
	}))
	L.SetField(engine, "max_traits", lua.LNumber(breeding.MaxTraits))
	L.SetField(engine, "max_generation", lua.LNumber(creature.MaxGeneration))
	L.SetGlobal("engine", engine)
}
