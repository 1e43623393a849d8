package engine

import (
	"errors"
	"fmt"

	"github.com/scottfrye/dnd/pkg/logger"
)

// ErrNegativeTicks возвращается при попытке продвинуть время или запустить
// симуляцию на отрицательное число тиков. Предусловие нарушено - падаем
// сразу, никогда не зажимаем значение в 0 молча.
var ErrNegativeTicks = errors.New("tick count must be non-negative")

// Фиксированные соотношения единиц времени (по мотивам AD&D 1E).
// 1 тик = 1 секунда. Константы определяют семантику системы единиц
// и не настраиваются в рантайме.
const (
	TicksPerRound = 10    // боевой раунд, 10 секунд
	TicksPerTurn  = 600   // ход, 10 минут
	TicksPerHour  = 3600
	TicksPerDay   = 86400
)

// TimeSystem владеет монотонным счетчиком тиков и конвертациями между
// единицами. Это самостоятельная утилита: она не привязана к WorldState
// (у того свои, более простые часы) и продвигается по требованию.
type TimeSystem struct {
	currentTick int
}

// NewTimeSystem создает систему времени со стартовым тиком.
func NewTimeSystem(startingTick int) *TimeSystem {
	logger.Log.WithField("tick", startingTick).Debug("TimeSystem initialized")
	return &TimeSystem{currentTick: startingTick}
}

// CurrentTick возвращает текущее игровое время в тиках.
func (t *TimeSystem) CurrentTick() int {
	return t.currentTick
}

// Advance продвигает время на ticks тиков и возвращает новое значение.
func (t *TimeSystem) Advance(ticks int) (int, error) {
	if ticks < 0 {
		return t.currentTick, fmt.Errorf("advance: %w (got %d)", ErrNegativeTicks, ticks)
	}
	t.currentTick += ticks
	logger.Log.WithFields(map[string]any{
		"delta": ticks,
		"tick":  t.currentTick,
	}).Debug("Time advanced")
	return t.currentTick, nil
}

// Конвертации "вниз" возвращают дробный результат без округления.

func TicksToRounds(ticks int) float64 { return float64(ticks) / TicksPerRound }
func TicksToTurns(ticks int) float64  { return float64(ticks) / TicksPerTurn }
func TicksToHours(ticks int) float64  { return float64(ticks) / TicksPerHour }
func TicksToDays(ticks int) float64   { return float64(ticks) / TicksPerDay }

// Конвертации "вверх" - чистое целочисленное умножение.

func RoundsToTicks(rounds int) int { return rounds * TicksPerRound }
func TurnsToTicks(turns int) int   { return turns * TicksPerTurn }
func HoursToTicks(hours int) int   { return hours * TicksPerHour }
func DaysToTicks(days int) int     { return days * TicksPerDay }

// TimeComponents - разложение времени для отображения и отладки.
// Планировщик никогда не принимает решений по этим полям.
type TimeComponents struct {
	Days    int `json:"days"`
	Hours   int `json:"hours"`
	Minutes int `json:"minutes"`
	Seconds int `json:"seconds"`
}

// Components раскладывает текущий тик каскадом целочисленных делений:
// сначала дни, затем часы внутри дня, минуты, остаток - секунды.
func (t *TimeSystem) Components() TimeComponents {
	remaining := t.currentTick

	days := remaining / TicksPerDay
	remaining %= TicksPerDay

	hours := remaining / TicksPerHour
	remaining %= TicksPerHour

	return TimeComponents{
		Days:    days,
		Hours:   hours,
		Minutes: remaining / 60,
		Seconds: remaining % 60,
	}
}
