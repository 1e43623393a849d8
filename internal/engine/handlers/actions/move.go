package actions

import (
	"github.com/scottfrye/dnd/internal/domain"
	"github.com/scottfrye/dnd/internal/engine/handlers"
	"github.com/scottfrye/dnd/pkg/logger"
)

// HandleMove делает один дискретный шаг в сторону цели: смещение по каждой
// оси - знак разности координат. Это 8-направленное движение в стиле
// Чебышева, не интерполяция прямой и не телепорт. Сущность, уже стоящая
// на цели, успешно "шагает" с нулевым смещением.
func HandleMove(ctx handlers.Context, action domain.Action) handlers.Result {
	if action.TargetPos == nil {
		logger.Log.WithField("entity_id", ctx.Actor.ID).Warn("Move action has no target position")
		return handlers.Fail("move: no target position")
	}

	oldPos := ctx.Actor.Pos
	dx, dy := oldPos.StepToward(*action.TargetPos)
	ctx.Actor.Pos.X += dx
	ctx.Actor.Pos.Y += dy

	logger.Log.WithFields(map[string]any{
		"entity_id": ctx.Actor.ID,
		"from_x":    oldPos.X,
		"from_y":    oldPos.Y,
		"to_x":      ctx.Actor.Pos.X,
		"to_y":      ctx.Actor.Pos.Y,
	}).Debug("Entity moved")

	return handlers.OK()
}
