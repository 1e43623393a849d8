package engine

import (
	"github.com/scottfrye/dnd/internal/domain"
	"github.com/scottfrye/dnd/internal/engine/handlers"
	"github.com/scottfrye/dnd/internal/engine/handlers/actions"
	"github.com/scottfrye/dnd/pkg/logger"
)

// ActionHandler - слой разрешения действий: превращает абстрактное
// намерение (Action) в мутацию состояния внутри WorldState.
// Хендлеры зарегистрированы по типу действия; новые типы добавляются
// регистрацией, без правки диспетчера.
type ActionHandler struct {
	world    *domain.WorldState
	resolver handlers.CombatResolver
	handlers map[domain.ActionType]handlers.HandlerFunc
}

// NewActionHandler создает обработчик с базовым набором действий.
// resolver может быть nil - тогда атака только логируется.
func NewActionHandler(world *domain.WorldState, resolver handlers.CombatResolver) *ActionHandler {
	h := &ActionHandler{
		world:    world,
		resolver: resolver,
		handlers: make(map[domain.ActionType]handlers.HandlerFunc),
	}
	h.Register(domain.ActionMove, actions.HandleMove)
	h.Register(domain.ActionAttack, actions.HandleAttack)
	h.Register(domain.ActionIdle, actions.HandleIdle)
	logger.Log.Debug("ActionHandler initialized")
	return h
}

// Register добавляет (или заменяет) хендлер для типа действия.
func (h *ActionHandler) Register(t domain.ActionType, fn handlers.HandlerFunc) {
	h.handlers[t] = fn
}

// HandleAction применяет действие к сущности. Возвращает false при любом
// отказе: сущность не найдена, тип неизвестен, у хендлера не сошлись
// предусловия. Отказ - обычный исход, не паника и не ошибка.
func (h *ActionHandler) HandleAction(action domain.Action, entityID string) bool {
	entity := h.world.GetEntity(entityID)
	if entity == nil {
		logger.Log.WithField("entity_id", entityID).Warn("Cannot handle action: entity not found")
		return false
	}

	fn, ok := h.handlers[action.Type]
	if !ok {
		logger.Log.WithField("action", action.Type.String()).Warn("Unknown action type")
		return false
	}

	res := fn(handlers.Context{
		Finder:   h.world,
		World:    h.world,
		Actor:    entity,
		Resolver: h.resolver,
	}, action)

	if res.Msg != "" {
		logger.Log.WithFields(map[string]any{
			"entity_id": entityID,
			"type":      res.MsgType,
		}).Debug(res.Msg)
	}
	return res.OK
}
