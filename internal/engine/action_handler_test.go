package engine

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/scottfrye/dnd/internal/domain"
	"github.com/scottfrye/dnd/internal/engine/handlers"
	"github.com/scottfrye/dnd/pkg/logger"
)

func setupWorld(t *testing.T, entities ...*domain.Entity) *domain.WorldState {
	t.Helper()
	w := domain.NewWorldState()
	for _, e := range entities {
		if err := w.AddEntity(e); err != nil {
			t.Fatal(err)
		}
	}
	return w
}

func TestHandleAction_EntityNotFound(t *testing.T) {
	h := NewActionHandler(setupWorld(t), nil)
	if h.HandleAction(domain.Idle(), "ghost") {
		t.Error("expected false for missing entity")
	}
}

func TestHandleAction_EntityNotFoundLogsWarning(t *testing.T) {
	var buf bytes.Buffer
	logger.SetOutput(&buf)
	defer logger.SetOutput(os.Stdout)

	h := NewActionHandler(setupWorld(t), nil)
	h.HandleAction(domain.Idle(), "ghost")

	if !strings.Contains(buf.String(), "entity not found") {
		t.Errorf("log output %q, want missing-entity warning", buf.String())
	}
}

func TestHandleAction_UnknownType(t *testing.T) {
	e := domain.NewEntity("hero", domain.Position{LocationID: "arena"})
	h := NewActionHandler(setupWorld(t, e), nil)

	if h.HandleAction(domain.Action{Type: domain.ActionUnknown}, "hero") {
		t.Error("expected false for unknown action type")
	}
}

func TestHandleAction_Idle(t *testing.T) {
	e := domain.NewEntity("hero", domain.Position{X: 2, Y: 2, LocationID: "arena"})
	h := NewActionHandler(setupWorld(t, e), nil)

	if !h.HandleAction(domain.Idle(), "hero") {
		t.Error("idle must always succeed")
	}
	if e.Pos.X != 2 || e.Pos.Y != 2 {
		t.Error("idle must not move the entity")
	}
}

func TestHandleAction_MoveStepsToward(t *testing.T) {
	e := domain.NewEntity("hero", domain.Position{X: 0, Y: 0, LocationID: "arena"})
	h := NewActionHandler(setupWorld(t, e), nil)

	move := domain.MoveToward(domain.Position{X: 5, Y: 5, LocationID: "arena"})

	// Один вызов - один шаг по диагонали
	if !h.HandleAction(move, "hero") {
		t.Fatal("move failed")
	}
	if e.Pos.X != 1 || e.Pos.Y != 1 {
		t.Errorf("after one step: (%d,%d), want (1,1)", e.Pos.X, e.Pos.Y)
	}

	// Три вызова всего - позиция (3,3), никакого телепорта
	h.HandleAction(move, "hero")
	h.HandleAction(move, "hero")
	if e.Pos.X != 3 || e.Pos.Y != 3 {
		t.Errorf("after three steps: (%d,%d), want (3,3)", e.Pos.X, e.Pos.Y)
	}
}

func TestHandleAction_MoveAtTarget(t *testing.T) {
	e := domain.NewEntity("hero", domain.Position{X: 4, Y: 4, LocationID: "arena"})
	h := NewActionHandler(setupWorld(t, e), nil)

	// Уже на цели: успех с нулевым смещением
	move := domain.MoveToward(domain.Position{X: 4, Y: 4, LocationID: "arena"})
	if !h.HandleAction(move, "hero") {
		t.Error("move to own position must succeed")
	}
	if e.Pos.X != 4 || e.Pos.Y != 4 {
		t.Error("zero displacement expected")
	}
}

func TestHandleAction_MoveNoTarget(t *testing.T) {
	e := domain.NewEntity("hero", domain.Position{LocationID: "arena"})
	h := NewActionHandler(setupWorld(t, e), nil)

	if h.HandleAction(domain.Action{Type: domain.ActionMove}, "hero") {
		t.Error("move without target position must fail")
	}
}

func TestHandleAction_AttackSameLocation(t *testing.T) {
	attacker := domain.NewEntity("hero", domain.Position{X: 0, Y: 0, LocationID: "dungeon"})
	target := domain.NewEntity("orc", domain.Position{X: 1, Y: 1, LocationID: "dungeon"})
	h := NewActionHandler(setupWorld(t, attacker, target), nil)

	if !h.HandleAction(domain.AttackTarget("orc"), "hero") {
		t.Error("same-location attack must succeed")
	}
}

func TestHandleAction_AttackCrossLocation(t *testing.T) {
	attacker := domain.NewEntity("hero", domain.Position{X: 0, Y: 0, LocationID: "dungeon"})
	target := domain.NewEntity("orc", domain.Position{X: 1, Y: 1, LocationID: "dungeon2"})
	h := NewActionHandler(setupWorld(t, attacker, target), nil)

	// Атаки между локациями невозможны
	if h.HandleAction(domain.AttackTarget("orc"), "hero") {
		t.Error("cross-location attack must fail")
	}
}

func TestHandleAction_AttackMissingTarget(t *testing.T) {
	attacker := domain.NewEntity("hero", domain.Position{LocationID: "dungeon"})
	h := NewActionHandler(setupWorld(t, attacker), nil)

	if h.HandleAction(domain.AttackTarget("nobody"), "hero") {
		t.Error("attack on unknown target must fail")
	}
	if h.HandleAction(domain.Action{Type: domain.ActionAttack}, "hero") {
		t.Error("attack without target id must fail")
	}
}

// fixedResolver - тестовый резолвер с заранее известным исходом.
type fixedResolver struct {
	outcome handlers.CombatOutcome
}

func (r fixedResolver) ResolveAttack(_, _ *domain.Entity) (handlers.CombatOutcome, error) {
	return r.outcome, nil
}

func TestHandleAction_AttackWithResolver(t *testing.T) {
	attacker := domain.NewEntity("hero", domain.Position{LocationID: "dungeon"})
	target := domain.NewEntity("orc", domain.Position{X: 1, Y: 0, LocationID: "dungeon"})
	target.Properties[domain.PropHP] = 10

	resolver := fixedResolver{outcome: handlers.CombatOutcome{Hit: true, Roll: 18, Damage: 4}}
	h := NewActionHandler(setupWorld(t, attacker, target), resolver)

	if !h.HandleAction(domain.AttackTarget("orc"), "hero") {
		t.Fatal("attack failed")
	}
	if hp := target.IntProp(domain.PropHP, 0); hp != 6 {
		t.Errorf("target hp = %d, want 6", hp)
	}
}

func TestHandleAction_AttackMissNoDamage(t *testing.T) {
	attacker := domain.NewEntity("hero", domain.Position{LocationID: "dungeon"})
	target := domain.NewEntity("orc", domain.Position{X: 1, Y: 0, LocationID: "dungeon"})
	target.Properties[domain.PropHP] = 10

	resolver := fixedResolver{outcome: handlers.CombatOutcome{Hit: false, Roll: 2}}
	h := NewActionHandler(setupWorld(t, attacker, target), resolver)

	if !h.HandleAction(domain.AttackTarget("orc"), "hero") {
		t.Fatal("attack action itself must succeed on a miss")
	}
	if hp := target.IntProp(domain.PropHP, 0); hp != 10 {
		t.Errorf("target hp = %d, want 10 (miss)", hp)
	}
}
