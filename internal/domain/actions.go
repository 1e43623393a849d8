package domain

import "strings"

// ActionType - внутренний числовой идентификатор действия
type ActionType uint8

const (
	ActionUnknown ActionType = iota
	ActionMove
	ActionAttack
	ActionIdle
	// В будущем: ActionTalk, ActionInteract, ActionUseItem...
)

// Маппинг для конвертации внешнего представления -> Domain
var actionStringToType = map[string]ActionType{
	"MOVE":   ActionMove,
	"ATTACK": ActionAttack,
	"IDLE":   ActionIdle,
}

// Маппинг для логов Domain -> String
var actionTypeToString = map[ActionType]string{
	ActionMove:   "MOVE",
	ActionAttack: "ATTACK",
	ActionIdle:   "IDLE",
}

// ParseAction конвертирует строку из внешнего ввода в ActionType.
// Неизвестные строки дают ActionUnknown - хендлер откажет, но не упадет.
func ParseAction(s string) ActionType {
	// Нечувствительность к регистру для надежности
	if val, ok := actionStringToType[strings.ToUpper(s)]; ok {
		return val
	}
	return ActionUnknown
}

// String реализует интерфейс Stringer (для fmt.Printf и логов)
func (a ActionType) String() string {
	if val, ok := actionTypeToString[a]; ok {
		return val
	}
	return "UNKNOWN"
}

// Action - намерение, а не мутация: его производят behavior-функции NPC
// или трансляция ввода игрока, а применяет ActionHandler. Живет одно
// действие и нигде не сохраняется.
type Action struct {
	Type ActionType

	// TargetPos - куда двигаться (только для ActionMove). nil = не задано.
	TargetPos *Position

	// TargetEntityID - кого атаковать (только для ActionAttack).
	TargetEntityID string

	// Data - открытые вспомогательные параметры (дистанция до цели,
	// индекс точки маршрута и т.п.). Ядро их не интерпретирует.
	Data map[string]any
}

// Idle возвращает действие "ничего не делать".
func Idle() Action {
	return Action{Type: ActionIdle}
}

// MoveToward возвращает намерение сделать шаг в сторону цели.
func MoveToward(target Position) Action {
	return Action{Type: ActionMove, TargetPos: &target}
}

// AttackTarget возвращает намерение атаковать сущность.
func AttackTarget(targetID string) Action {
	return Action{Type: ActionAttack, TargetEntityID: targetID}
}
