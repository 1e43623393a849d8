package engine

import (
	"errors"
	"testing"

	"github.com/scottfrye/dnd/internal/domain"
)

func TestNewGameEngine_NilWorld(t *testing.T) {
	g := NewGameEngine(nil, ModePlayer)
	if g.World == nil {
		t.Fatal("expected engine to create an empty world")
	}
	if g.CurrentTime() != 0 {
		t.Errorf("fresh world time = %d", g.CurrentTime())
	}
}

func TestStep_AdvancesOneTick(t *testing.T) {
	g := NewGameEngine(nil, ModePlayer)

	if got := g.Step(nil); got != 1 {
		t.Errorf("step = %d, want 1", got)
	}

	// Приложенное действие лишь отмечается - мир все равно тикает один раз
	action := domain.Idle()
	if got := g.Step(&action); got != 2 {
		t.Errorf("step with action = %d, want 2", got)
	}
}

func TestStep_HeadlessIgnoresAction(t *testing.T) {
	g := NewGameEngine(nil, ModeHeadless)
	action := domain.MoveToward(domain.Position{X: 5, Y: 5, LocationID: "arena"})
	if got := g.Step(&action); got != 1 {
		t.Errorf("step = %d, want 1", got)
	}
}

func TestRunHeadless(t *testing.T) {
	g := NewGameEngine(nil, ModeHeadless)

	// Отрицательное число тиков - ошибка, время не трогается
	if _, err := g.RunHeadless(-1); !errors.Is(err, ErrNegativeTicks) {
		t.Errorf("expected ErrNegativeTicks, got %v", err)
	}
	if g.CurrentTime() != 0 {
		t.Errorf("time mutated on failed run: %d", g.CurrentTime())
	}

	// Ноль тиков оставляет время как есть
	if final, err := g.RunHeadless(0); err != nil || final != 0 {
		t.Errorf("RunHeadless(0) = %d, %v", final, err)
	}

	// 50 тиков продвигают время ровно на 50
	final, err := g.RunHeadless(50)
	if err != nil {
		t.Fatal(err)
	}
	if final != 50 {
		t.Errorf("RunHeadless(50) = %d, want 50", final)
	}
	if g.CurrentTime() != 50 {
		t.Errorf("world time = %d, want 50", g.CurrentTime())
	}
}

func TestSetMode(t *testing.T) {
	g := NewGameEngine(nil, ModePlayer)

	g.SetMode(ModeHeadless)
	if g.Mode() != ModeHeadless {
		t.Errorf("mode = %s, want headless", g.Mode())
	}

	// Установка того же режима - no-op
	g.SetMode(ModeHeadless)
	if g.Mode() != ModeHeadless {
		t.Errorf("mode = %s", g.Mode())
	}
}

func TestCurrentTime_NoSideEffects(t *testing.T) {
	g := NewGameEngine(nil, ModePlayer)
	g.Step(nil)

	before := g.CurrentTime()
	for i := 0; i < 5; i++ {
		g.CurrentTime()
	}
	if g.CurrentTime() != before {
		t.Error("CurrentTime must not advance the world")
	}
}
