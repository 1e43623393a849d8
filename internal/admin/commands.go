// Package admin - тонкая таблица диспетчеризации админ-команд поверх
// WorldState. Это потребитель ядра симуляции, не его часть: команды
// ходят только через публичные мутаторы мира.
package admin

import (
	"fmt"
	"sort"

	"github.com/scottfrye/dnd/internal/domain"
	"github.com/scottfrye/dnd/pkg/logger"
)

// CommandResult - итог выполнения админ-команды.
type CommandResult struct {
	Success bool           `json:"success"`
	Message string         `json:"message"`
	Data    map[string]any `json:"data,omitempty"`
}

// CommandFunc - контракт команды: мир плюс именованные аргументы.
type CommandFunc func(world *domain.WorldState, args map[string]any) CommandResult

// Registry хранит команды с описаниями и выполняет их по имени.
// Это явно конструируемый объект: собирается в composition root
// приложения и передается туда, где нужен. Глобальный дефолт ниже -
// удобство для скриптов, ядро движка им не пользуется.
type Registry struct {
	commands     map[string]CommandFunc
	descriptions map[string]string
}

// NewRegistry создает реестр с базовым набором команд.
func NewRegistry() *Registry {
	r := &Registry{
		commands:     make(map[string]CommandFunc),
		descriptions: make(map[string]string),
	}
	r.Register("advance_time", cmdAdvanceTime, "Advance game time by specified ticks")
	r.Register("teleport", cmdTeleport, "Teleport an entity to a location")
	r.Register("show_factions", cmdShowFactions, "Display faction information")
	r.Register("reveal_map", cmdRevealMap, "Reveal map areas (remove fog of war)")
	return r
}

// Register добавляет команду в реестр.
func (r *Registry) Register(name string, fn CommandFunc, description string) {
	r.commands[name] = fn
	r.descriptions[name] = description
	logger.Log.WithField("command", name).Debug("Registered admin command")
}

// Get возвращает команду по имени, nil если нет.
func (r *Registry) Get(name string) CommandFunc {
	return r.commands[name]
}

// List возвращает отсортированный список имен команд.
func (r *Registry) List() []string {
	names := make([]string, 0, len(r.commands))
	for name := range r.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Describe возвращает описание команды (пустую строку, если команды нет).
func (r *Registry) Describe(name string) string {
	return r.descriptions[name]
}

// Execute выполняет команду по имени. Паника внутри команды не роняет
// процесс, а превращается в неуспешный результат.
func (r *Registry) Execute(command string, world *domain.WorldState, args map[string]any) (res CommandResult) {
	fn := r.Get(command)
	if fn == nil {
		return CommandResult{Success: false, Message: fmt.Sprintf("Unknown command: %s", command)}
	}

	defer func() {
		if rec := recover(); rec != nil {
			logger.Log.WithField("command", command).Errorf("Command panicked: %v", rec)
			res = CommandResult{Success: false, Message: fmt.Sprintf("Command failed: %v", rec)}
		}
	}()

	return fn(world, args)
}

// --- Базовые команды ---

func cmdAdvanceTime(world *domain.WorldState, args map[string]any) CommandResult {
	ticks := intArg(args, "ticks", 1)
	if ticks < 0 {
		return CommandResult{Success: false, Message: "Cannot advance time by negative ticks"}
	}

	startTime := world.Time()
	for i := 0; i < ticks; i++ {
		world.Tick()
	}
	endTime := world.Time()

	return CommandResult{
		Success: true,
		Message: fmt.Sprintf("Advanced time by %d ticks (from %d to %d)", ticks, startTime, endTime),
		Data: map[string]any{
			"start_time": startTime,
			"end_time":   endTime,
			"ticks":      ticks,
		},
	}
}

func cmdTeleport(world *domain.WorldState, args map[string]any) CommandResult {
	entityID := stringArg(args, "entity_id", "")
	locationID := stringArg(args, "location_id", "")
	x := intArg(args, "x", 0)
	y := intArg(args, "y", 0)

	entity := world.GetEntity(entityID)
	if entity == nil {
		return CommandResult{Success: false, Message: fmt.Sprintf("Entity not found: %s", entityID)}
	}

	oldPos := entity.Pos
	entity.Pos = domain.Position{X: x, Y: y, LocationID: locationID}

	return CommandResult{
		Success: true,
		Message: fmt.Sprintf("Teleported %s from [%d, %d] to [%d, %d] in %s",
			entityID, oldPos.X, oldPos.Y, x, y, locationID),
		Data: map[string]any{
			"entity_id":    entityID,
			"old_position": oldPos,
			"new_position": entity.Pos,
		},
	}
}

func cmdShowFactions(world *domain.WorldState, args map[string]any) CommandResult {
	// Заглушка, демонстрирующая структуру команды: системы фракций
	// в ядре пока нет.
	mode := "summary"
	if boolArg(args, "detail", false) {
		mode = "detailed"
	}
	return CommandResult{
		Success: true,
		Message: fmt.Sprintf("Faction display (%s) - No factions currently defined", mode),
		Data:    map[string]any{"mode": mode, "factions": []any{}, "total": 0},
	}
}

func cmdRevealMap(world *domain.WorldState, args map[string]any) CommandResult {
	// Заглушка: системы видимости карты в ядре нет, команда фиксирует
	// контракт для внешнего рендерера.
	area := stringArg(args, "area", "current")
	return CommandResult{
		Success: true,
		Message: fmt.Sprintf("Map revealed: %s", area),
		Data:    map[string]any{"area": area, "revealed": true},
	}
}

// --- Чтение аргументов ---
// Аргументы приходят из JSON (HTTP-админка), поэтому числа бывают float64.

func intArg(args map[string]any, key string, def int) int {
	switch v := args[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	}
	return def
}

func stringArg(args map[string]any, key, def string) string {
	if s, ok := args[key].(string); ok {
		return s
	}
	return def
}

func boolArg(args map[string]any, key string, def bool) bool {
	if b, ok := args[key].(bool); ok {
		return b
	}
	return def
}

// Глобальный реестр для скриптов и демо. Движок его не трогает.
var defaultRegistry = NewRegistry()

// Execute выполняет команду через глобальный реестр.
func Execute(command string, world *domain.WorldState, args map[string]any) CommandResult {
	return defaultRegistry.Execute(command, world, args)
}

// DefaultRegistry возвращает глобальный реестр.
func DefaultRegistry() *Registry {
	return defaultRegistry
}
