package domain

import (
	"errors"
	"testing"
)

func testEntity(id string, x, y int, loc string) *Entity {
	return NewEntity(id, Position{X: x, Y: y, LocationID: loc})
}

func TestAddEntity_Duplicate(t *testing.T) {
	w := NewWorldState()

	original := testEntity("goblin_1", 1, 2, "dungeon")
	if err := w.AddEntity(original); err != nil {
		t.Fatalf("first add failed: %v", err)
	}

	// Повторная регистрация того же ID должна быть отклонена
	err := w.AddEntity(testEntity("goblin_1", 9, 9, "dungeon"))
	if !errors.Is(err, ErrDuplicateEntity) {
		t.Errorf("expected ErrDuplicateEntity, got %v", err)
	}

	// Оригинал остался нетронутым
	got := w.GetEntity("goblin_1")
	if got != original || got.Pos.X != 1 || got.Pos.Y != 2 {
		t.Error("original entity was replaced or mutated")
	}
}

func TestRemoveEntity(t *testing.T) {
	w := NewWorldState()
	if err := w.AddEntity(testEntity("npc_1", 0, 0, "town")); err != nil {
		t.Fatal(err)
	}

	if !w.RemoveEntity("npc_1") {
		t.Error("expected removal of existing entity to return true")
	}
	if w.RemoveEntity("npc_1") {
		t.Error("expected second removal to return false")
	}
	if w.GetEntity("npc_1") != nil {
		t.Error("entity still present after removal")
	}
}

func TestGetEntity_NotFound(t *testing.T) {
	w := NewWorldState()
	// "Не найдено" - ожидаемый исход, а не ошибка
	if w.GetEntity("ghost") != nil {
		t.Error("expected nil for unknown id")
	}
}

func TestAllEntityIDs(t *testing.T) {
	w := NewWorldState()
	for _, id := range []string{"a", "b", "c"} {
		if err := w.AddEntity(testEntity(id, 0, 0, "town")); err != nil {
			t.Fatal(err)
		}
	}

	ids := w.AllEntityIDs()
	if len(ids) != 3 {
		t.Fatalf("expected 3 ids, got %d", len(ids))
	}
	for i, want := range []string{"a", "b", "c"} {
		if ids[i] != want {
			t.Errorf("ids[%d] = %q, want %q (sorted order)", i, ids[i], want)
		}
	}
}

func TestWorldTick(t *testing.T) {
	w := NewWorldState()
	if w.Time() != 0 {
		t.Errorf("new world time = %d, want 0", w.Time())
	}

	if got := w.Tick(); got != 1 {
		t.Errorf("first tick = %d, want 1", got)
	}
	if got := w.Tick(); got != 2 {
		t.Errorf("second tick = %d, want 2", got)
	}
	if w.Time() != 2 {
		t.Errorf("time = %d, want 2", w.Time())
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	w := NewWorldState()

	hero := testEntity("hero", 3, 4, "arena")
	hero.Properties[PropType] = "player"
	hero.Properties[PropHP] = 20
	if err := w.AddEntity(hero); err != nil {
		t.Fatal(err)
	}
	if err := w.AddEntity(testEntity("orc_1", 7, 7, "arena")); err != nil {
		t.Fatal(err)
	}
	w.Tick()
	w.Tick()
	w.Tick()

	restored, err := FromSnapshot(w.Snapshot())
	if err != nil {
		t.Fatalf("FromSnapshot failed: %v", err)
	}

	if restored.Time() != 3 {
		t.Errorf("restored time = %d, want 3", restored.Time())
	}
	if restored.EntityCount() != 2 {
		t.Errorf("restored entity count = %d, want 2", restored.EntityCount())
	}
	got := restored.GetEntity("hero")
	if got == nil {
		t.Fatal("hero missing after round trip")
	}
	if !got.Pos.Equals(Position{X: 3, Y: 4, LocationID: "arena"}) {
		t.Errorf("hero position not preserved: %+v", got.Pos)
	}
	if got.IntProp(PropHP, 0) != 20 {
		t.Error("hero hp property not preserved")
	}
}

func TestFromSnapshot_MissingTime(t *testing.T) {
	// Снапшот без времени (старый файл) дает время 0
	restored, err := FromSnapshot(WorldSnapshot{
		Entities: []EntitySnapshot{
			{ID: "x", Position: Position{X: 1, Y: 1, LocationID: "town"}},
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	if restored.Time() != 0 {
		t.Errorf("time = %d, want 0", restored.Time())
	}
}

func TestFromSnapshot_DuplicateIDs(t *testing.T) {
	_, err := FromSnapshot(WorldSnapshot{
		Entities: []EntitySnapshot{
			{ID: "dup", Position: Position{LocationID: "town"}},
			{ID: "dup", Position: Position{LocationID: "town"}},
		},
	})
	if !errors.Is(err, ErrDuplicateEntity) {
		t.Errorf("expected ErrDuplicateEntity on load, got %v", err)
	}
}

func TestStepToward(t *testing.T) {
	from := Position{X: 0, Y: 0, LocationID: "arena"}

	cases := []struct {
		target Position
		dx, dy int
	}{
		{Position{X: 5, Y: 5, LocationID: "arena"}, 1, 1},
		{Position{X: -3, Y: 0, LocationID: "arena"}, -1, 0},
		{Position{X: 0, Y: 2, LocationID: "arena"}, 0, 1},
		{Position{X: 0, Y: 0, LocationID: "arena"}, 0, 0}, // уже на месте
	}

	for _, c := range cases {
		dx, dy := from.StepToward(c.target)
		if dx != c.dx || dy != c.dy {
			t.Errorf("StepToward(%+v) = (%d,%d), want (%d,%d)", c.target, dx, dy, c.dx, c.dy)
		}
	}
}

func TestManhattanTo(t *testing.T) {
	a := Position{X: 1, Y: 1, LocationID: "arena"}
	b := Position{X: 4, Y: -1, LocationID: "arena"}
	if d := a.ManhattanTo(b); d != 5 {
		t.Errorf("distance = %d, want 5", d)
	}
}

func TestWaypointsProp_Deserialized(t *testing.T) {
	// После загрузки сохранения точки маршрута приходят как []any с map
	e := testEntity("guard", 0, 0, "keep")
	e.Properties[PropWaypoints] = []any{
		map[string]any{"x": 3, "y": 0, "location_id": "keep"},
		map[string]any{"x": float64(0), "y": float64(0), "location_id": "keep"},
	}

	wps := e.Waypoints()
	if len(wps) != 2 {
		t.Fatalf("expected 2 waypoints, got %d", len(wps))
	}
	if wps[0].X != 3 || wps[0].LocationID != "keep" {
		t.Errorf("waypoint 0 = %+v", wps[0])
	}
	if wps[1].X != 0 || wps[1].Y != 0 {
		t.Errorf("waypoint 1 = %+v", wps[1])
	}
}
