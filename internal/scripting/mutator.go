package scripting

import (
	"context"
	"fmt"
	"sync"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/cplax14/sawyers-rpg-game-sub003/internal/game/breeding"
)

// MutateHook is the Lua global a mutation script must define. It receives the
// offspring generation and a table of the traits inherited so far, and returns
// a trait id string or nil.
const MutateHook = "mutate"

var _ breeding.TraitMutator = (*LuaMutator)(nil)

// LuaMutator is a breeding.TraitMutator backed by a sandboxed Lua script.
//
// LuaMutator is safe for concurrent use; calls into the VM are serialized.
type LuaMutator struct {
	mu        sync.Mutex
	L         *lua.LState
	cancel    context.CancelFunc
	instLimit int
	path      string
	logger    *zap.Logger
}

// LoadMutator executes the script at path in a fresh sandbox and checks that
// it defines the mutate hook.
//
// Precondition: logger must be non-nil.
// Postcondition: Returns a ready LuaMutator, or an error if the script fails
// to load or does not define mutate.
func LoadMutator(path string, instLimit int, logger *zap.Logger) (*LuaMutator, error) {
	if logger == nil {
		panic("scripting: LoadMutator precondition violated: logger is nil")
	}
	L, cancel := NewSandboxedState(instLimit)
	registerModules(L, logger, path)

	if err := L.DoFile(path); err != nil {
		cancel()
		L.Close()
		return nil, fmt.Errorf("scripting: loading %q: %w", path, err)
	}
	if fn := L.GetGlobal(MutateHook); fn.Type() != lua.LTFunction {
		cancel()
		L.Close()
		return nil, fmt.Errorf("scripting: %q does not define function %s", path, MutateHook)
	}
	return &LuaMutator{
		L:         L,
		cancel:    cancel,
		instLimit: instLimit,
		path:      path,
		logger:    logger,
	}, nil
}

// Mutate calls the script's mutate hook with a fresh instruction budget.
// Lua runtime errors and non-string results are logged at Warn level and
// reported as no mutation.
//
// Postcondition: ok is true only when the hook returned a non-empty string.
func (m *LuaMutator) Mutate(generation int, traits []string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.cancel()
	m.cancel = resetBudget(m.L, m.instLimit)

	tbl := m.L.NewTable()
	for _, t := range traits {
		tbl.Append(lua.LString(t))
	}

	err := m.L.CallByParam(lua.P{
		Fn:      m.L.GetGlobal(MutateHook),
		NRet:    1,
		Protect: true,
	}, lua.LNumber(generation), tbl)
	if err != nil {
		m.logger.Warn("scripting: Lua runtime error",
			zap.String("script", m.path),
			zap.String("hook", MutateHook),
			zap.Error(err),
		)
		return "", false
	}

	ret := m.L.Get(-1)
	m.L.Pop(1)
	switch v := ret.(type) {
	case lua.LString:
		if v == "" {
			return "", false
		}
		m.logger.Debug("trait mutation proposed",
			zap.String("trait", string(v)),
			zap.Int("generation", generation),
		)
		return string(v), true
	case *lua.LNilType:
		return "", false
	default:
		m.logger.Warn("scripting: mutate returned a non-string value",
			zap.String("script", m.path),
			zap.String("type", ret.Type().String()),
		)
		return "", false
	}
}

// Close releases the Lua VM.
//
// Postcondition: The mutator must not be used after Close.
func (m *LuaMutator) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cancel()
	m.L.Close()
}
