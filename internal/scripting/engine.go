// Package scripting - мост к Lua-скриптам правил. Расчет попадания и урона
// не принадлежит ядру симуляции: хендлер атаки зовет резолвер через шов
// handlers.CombatResolver, а формулы живут в скриптах и меняются без
// пересборки сервера.
package scripting

import (
	"fmt"
	"os"
	"path/filepath"

	lua "github.com/yuin/gopher-lua"

	"github.com/scottfrye/dnd/internal/domain"
	"github.com/scottfrye/dnd/internal/engine/handlers"
	"github.com/scottfrye/dnd/pkg/logger"
)

// Engine оборачивает одну Lua VM. Доступ строго из одной горутины
// (шаг симуляции и так однопоточный).
type Engine struct {
	vm *lua.LState
}

// NewEngine создает VM и загружает все .lua файлы из каталога.
func NewEngine(scriptsDir string) (*Engine, error) {
	vm := lua.NewState()
	vm.SetGlobal("API_VERSION", lua.LNumber(1))

	e := &Engine{vm: vm}
	if err := e.loadDir(scriptsDir); err != nil {
		vm.Close()
		return nil, fmt.Errorf("load scripts: %w", err)
	}
	return e, nil
}

// NewEngineFromSource создает VM из строки с кодом (для тестов).
func NewEngineFromSource(source string) (*Engine, error) {
	vm := lua.NewState()
	vm.SetGlobal("API_VERSION", lua.LNumber(1))
	if err := vm.DoString(source); err != nil {
		vm.Close()
		return nil, fmt.Errorf("load script source: %w", err)
	}
	return &Engine{vm: vm}, nil
}

// Close освобождает VM.
func (e *Engine) Close() {
	e.vm.Close()
}

// loadDir загружает все .lua файлы каталога. Отсутствующий каталог - не
// ошибка: сервер просто останется без скриптовых правил.
func (e *Engine) loadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".lua" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := e.vm.DoFile(path); err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
		logger.Log.WithField("file", path).Debug("Loaded lua script")
	}
	return nil
}

// entityToTable упаковывает сущность в Lua-таблицу: id, позиция и плоские
// свойства (строки, числа, булевы). Списки и вложенные структуры скриптам
// правил не нужны.
func (e *Engine) entityToTable(entity *domain.Entity) *lua.LTable {
	tbl := e.vm.NewTable()
	tbl.RawSetString("id", lua.LString(entity.ID))
	tbl.RawSetString("x", lua.LNumber(entity.Pos.X))
	tbl.RawSetString("y", lua.LNumber(entity.Pos.Y))
	tbl.RawSetString("location_id", lua.LString(entity.Pos.LocationID))

	props := e.vm.NewTable()
	for key, value := range entity.Properties {
		switch v := value.(type) {
		case string:
			props.RawSetString(key, lua.LString(v))
		case int:
			props.RawSetString(key, lua.LNumber(v))
		case int64:
			props.RawSetString(key, lua.LNumber(v))
		case float64:
			props.RawSetString(key, lua.LNumber(v))
		case bool:
			props.RawSetString(key, lua.LBool(v))
		}
	}
	tbl.RawSetString("properties", props)
	return tbl
}

// ResolveAttack вызывает Lua-функцию resolve_attack(attacker, defender)
// и ожидает таблицу {hit=bool, roll=int, damage=int}.
// Реализует handlers.CombatResolver.
func (e *Engine) ResolveAttack(attacker, defender *domain.Entity) (handlers.CombatOutcome, error) {
	fn := e.vm.GetGlobal("resolve_attack")
	if fn == lua.LNil {
		return handlers.CombatOutcome{}, fmt.Errorf("lua function resolve_attack not found")
	}

	err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, e.entityToTable(attacker), e.entityToTable(defender))
	if err != nil {
		return handlers.CombatOutcome{}, fmt.Errorf("resolve_attack: %w", err)
	}

	ret := e.vm.Get(-1)
	e.vm.Pop(1)

	tbl, ok := ret.(*lua.LTable)
	if !ok {
		return handlers.CombatOutcome{}, fmt.Errorf("resolve_attack returned %s, want table", ret.Type())
	}

	outcome := handlers.CombatOutcome{}
	if hit, ok := tbl.RawGetString("hit").(lua.LBool); ok {
		outcome.Hit = bool(hit)
	}
	if roll, ok := tbl.RawGetString("roll").(lua.LNumber); ok {
		outcome.Roll = int(roll)
	}
	if damage, ok := tbl.RawGetString("damage").(lua.LNumber); ok {
		outcome.Damage = int(damage)
	}
	return outcome, nil
}
