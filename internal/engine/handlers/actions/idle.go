package actions

import (
	"github.com/scottfrye/dnd/internal/domain"
	"github.com/scottfrye/dnd/internal/engine/handlers"
	"github.com/scottfrye/dnd/pkg/logger"
)

// HandleIdle - бездействие. Всегда успешно, состояние не меняется.
func HandleIdle(ctx handlers.Context, _ domain.Action) handlers.Result {
	logger.Log.WithField("entity_id", ctx.Actor.ID).Debug("Entity is idle")
	return handlers.OK()
}
