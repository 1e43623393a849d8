package actions

import (
	"fmt"

	"github.com/scottfrye/dnd/internal/domain"
	"github.com/scottfrye/dnd/internal/engine/handlers"
	"github.com/scottfrye/dnd/pkg/logger"
)

// HandleAttack проверяет цель и отдает бой внешнему резолверу.
// Атаки между локациями невозможны: на этом слое нет модели снарядов,
// атакующий и цель обязаны делить location_id.
func HandleAttack(ctx handlers.Context, action domain.Action) handlers.Result {
	if action.TargetEntityID == "" {
		logger.Log.WithField("entity_id", ctx.Actor.ID).Warn("Attack action has no target entity")
		return handlers.Fail("attack: no target entity")
	}

	target := ctx.Finder.GetEntity(action.TargetEntityID)
	if target == nil {
		logger.Log.WithFields(map[string]any{
			"entity_id": ctx.Actor.ID,
			"target_id": action.TargetEntityID,
		}).Warn("Attack target not found")
		return handlers.Fail("attack: target not found")
	}

	if ctx.Actor.Pos.LocationID != target.Pos.LocationID {
		logger.Log.WithFields(map[string]any{
			"entity_id": ctx.Actor.ID,
			"target_id": target.ID,
		}).Warn("Attack across locations rejected")
		return handlers.Fail("attack: different locations")
	}

	logger.Log.WithFields(map[string]any{
		"entity_id": ctx.Actor.ID,
		"target_id": target.ID,
	}).Info("Entity attacks")

	// Без подключенного резолвера атака только логируется: расчет
	// попадания и урона принадлежит модулю правил, не ядру.
	if ctx.Resolver == nil {
		return handlers.Result{OK: true, Msg: "attack initiated", MsgType: "COMBAT"}
	}

	outcome, err := ctx.Resolver.ResolveAttack(ctx.Actor, target)
	if err != nil {
		logger.Log.WithField("entity_id", ctx.Actor.ID).Errorf("Combat resolver failed: %v", err)
		// Отказ резолвера не роняет шаг симуляции: сама атака состоялась
		return handlers.Result{OK: true, Msg: "attack initiated (resolver failed)", MsgType: "COMBAT"}
	}

	if !outcome.Hit {
		return handlers.Result{
			OK:      true,
			Msg:     fmt.Sprintf("%s misses %s (roll %d)", ctx.Actor.ID, target.ID, outcome.Roll),
			MsgType: "COMBAT",
		}
	}

	// Урон применяем только к цели, у которой вообще есть hp
	if _, tracked := target.Properties[domain.PropHP]; tracked && outcome.Damage > 0 {
		hp := target.IntProp(domain.PropHP, 0) - outcome.Damage
		target.Properties[domain.PropHP] = hp
		logger.Log.WithFields(map[string]any{
			"target_id": target.ID,
			"damage":    outcome.Damage,
			"hp":        hp,
		}).Info("Damage applied")
	}

	return handlers.Result{
		OK:      true,
		Msg:     fmt.Sprintf("%s hits %s for %d (roll %d)", ctx.Actor.ID, target.ID, outcome.Damage, outcome.Roll),
		MsgType: "COMBAT",
	}
}
