package systems

import (
	"github.com/scottfrye/dnd/internal/domain"
	"github.com/scottfrye/dnd/pkg/logger"
)

// BehaviorFunc решает за NPC: читает сущность и мир, возвращает намерение.
// Behavior-функции НЕ мутируют мир - применение действия отдельный шаг
// (ApplyAction или ActionHandler).
type BehaviorFunc func(npc *domain.Entity, world *domain.WorldState) domain.Action

// Реестр behavior-функций по имени: поведение NPC выбирается в рантайме
// строкой в свойстве "behavior", без иерархии классов и виртуальной
// диспетчеризации.
var behaviors = map[string]BehaviorFunc{}

// RegisterBehavior добавляет поведение в реестр.
func RegisterBehavior(name string, fn BehaviorFunc) {
	behaviors[name] = fn
	logger.Log.WithField("behavior", name).Debug("Registered behavior")
}

// BehaviorByName возвращает поведение по имени, nil если не зарегистрировано.
func BehaviorByName(name string) BehaviorFunc {
	return behaviors[name]
}

// BehaviorFor подбирает поведение сущности по свойству "behavior".
// Неизвестные и незаданные имена дают idle: NPC без мозгов стоит на месте,
// а не роняет симуляцию.
func BehaviorFor(npc *domain.Entity) BehaviorFunc {
	name := npc.StringProp(domain.PropBehavior, "idle")
	if fn := BehaviorByName(name); fn != nil {
		return fn
	}
	logger.Log.WithFields(map[string]any{
		"entity_id": npc.ID,
		"behavior":  name,
	}).Warn("Unknown behavior, falling back to idle")
	return IdleBehavior
}

func init() {
	RegisterBehavior("idle", IdleBehavior)
	RegisterBehavior("patrol", PatrolBehavior)
	RegisterBehavior("attack_on_sight", AttackOnSightBehavior)
}
