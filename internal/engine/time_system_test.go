package engine

import (
	"errors"
	"testing"
)

func TestAdvance_Additivity(t *testing.T) {
	// advance(a); advance(b) эквивалентно advance(a+b)
	a := NewTimeSystem(0)
	if _, err := a.Advance(37); err != nil {
		t.Fatal(err)
	}
	if _, err := a.Advance(63); err != nil {
		t.Fatal(err)
	}

	b := NewTimeSystem(0)
	if _, err := b.Advance(100); err != nil {
		t.Fatal(err)
	}

	if a.CurrentTick() != b.CurrentTick() {
		t.Errorf("split advance = %d, single advance = %d", a.CurrentTick(), b.CurrentTick())
	}
}

func TestAdvance_Negative(t *testing.T) {
	ts := NewTimeSystem(5)
	_, err := ts.Advance(-1)
	if !errors.Is(err, ErrNegativeTicks) {
		t.Errorf("expected ErrNegativeTicks, got %v", err)
	}
	if ts.CurrentTick() != 5 {
		t.Errorf("tick mutated on failed advance: %d", ts.CurrentTick())
	}
}

func TestAdvance_Zero(t *testing.T) {
	ts := NewTimeSystem(10)
	tick, err := ts.Advance(0)
	if err != nil {
		t.Fatal(err)
	}
	if tick != 10 {
		t.Errorf("tick = %d, want 10", tick)
	}
}

func TestUnitConversions(t *testing.T) {
	cases := []struct {
		got, want int
	}{
		{RoundsToTicks(3), 30},
		{TurnsToTicks(2), 1200},
		{HoursToTicks(1), 3600},
		{DaysToTicks(2), 172800},
	}
	for i, c := range cases {
		if c.got != c.want {
			t.Errorf("case %d: got %d, want %d", i, c.got, c.want)
		}
	}

	// Конвертации вниз дробные, без округления
	if r := TicksToRounds(15); r != 1.5 {
		t.Errorf("TicksToRounds(15) = %v, want 1.5", r)
	}
	if tr := TicksToTurns(300); tr != 0.5 {
		t.Errorf("TicksToTurns(300) = %v, want 0.5", tr)
	}
	if h := TicksToHours(5400); h != 1.5 {
		t.Errorf("TicksToHours(5400) = %v, want 1.5", h)
	}
	if d := TicksToDays(43200); d != 0.5 {
		t.Errorf("TicksToDays(43200) = %v, want 0.5", d)
	}
}

func TestComponents(t *testing.T) {
	// 1 день + 2 часа + 3 минуты + 4 секунды
	ts := NewTimeSystem(86400 + 2*3600 + 3*60 + 4)

	c := ts.Components()
	if c.Days != 1 || c.Hours != 2 || c.Minutes != 3 || c.Seconds != 4 {
		t.Errorf("components = %+v", c)
	}
}

func TestComponents_Zero(t *testing.T) {
	c := NewTimeSystem(0).Components()
	if c.Days != 0 || c.Hours != 0 || c.Minutes != 0 || c.Seconds != 0 {
		t.Errorf("components = %+v, want all zero", c)
	}
}
