package engine

import (
	"fmt"

	"github.com/scottfrye/dnd/internal/domain"
	"github.com/scottfrye/dnd/pkg/logger"
)

// GameMode - режим внешнего цикла.
type GameMode string

const (
	// ModePlayer - мир продвигается по шагам на вводе игрока.
	ModePlayer GameMode = "player"
	// ModeHeadless - мир тикает автономно, без ввода.
	ModeHeadless GameMode = "headless"
)

// GameEngine - внешний цикл симуляции: держит WorldState и режим,
// продвигает время шагами. Сам по себе он не вызывает ActionHandler -
// связка "действие игрока -> мутация" остается за интегратором
// (см. internal/server и headless-драйвер в cmd).
type GameEngine struct {
	World *domain.WorldState
	mode  GameMode
}

// NewGameEngine создает движок. nil вместо мира означает "создай пустой".
func NewGameEngine(world *domain.WorldState, mode GameMode) *GameEngine {
	if world == nil {
		world = domain.NewWorldState()
	}
	logger.Log.WithField("mode", mode).Info("GameEngine initialized")
	return &GameEngine{World: world, mode: mode}
}

// Mode возвращает текущий режим.
func (g *GameEngine) Mode() GameMode {
	return g.mode
}

// SetMode переключает режим. Логируем только реальную смену:
// установка того же режима - no-op.
func (g *GameEngine) SetMode(mode GameMode) {
	if g.mode == mode {
		return
	}
	logger.Log.WithFields(map[string]any{
		"from": g.mode,
		"to":   mode,
	}).Info("Game mode changed")
	g.mode = mode
}

// Step продвигает игру на один шаг и возвращает новое время мира.
// В режиме PLAYER приложенное действие только отмечается в логе -
// его применение через ActionHandler остается за интегратором.
// Мир при этом всегда тикает ровно один раз, в обоих режимах.
func (g *GameEngine) Step(action *domain.Action) int {
	if g.mode == ModePlayer && action != nil {
		logger.Log.WithField("action", action.Type.String()).Debug("Player action noted")
	}

	currentTime := g.World.Tick()
	logger.Log.WithField("time", currentTime).Debug("Game step completed")
	return currentTime
}

// RunHeadless тикает мир ровно ticks раз подряд и возвращает финальное
// время - эквивалент ticks последовательных Step без действия.
func (g *GameEngine) RunHeadless(ticks int) (int, error) {
	if ticks < 0 {
		return g.World.Time(), fmt.Errorf("run headless: %w (got %d)", ErrNegativeTicks, ticks)
	}

	logger.Log.WithField("ticks", ticks).Info("Running headless simulation")
	for i := 0; i < ticks; i++ {
		g.World.Tick()
	}

	finalTime := g.World.Time()
	logger.Log.WithField("time", finalTime).Info("Headless simulation completed")
	return finalTime, nil
}

// CurrentTime возвращает время мира без побочных эффектов.
func (g *GameEngine) CurrentTime() int {
	return g.World.Time()
}
