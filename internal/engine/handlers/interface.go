package handlers

import (
	"github.com/scottfrye/dnd/internal/domain"
)

// EntityFinder описывает любую структуру, которая может находить сущность
// по ID. WorldState неявно реализует этот интерфейс.
type EntityFinder interface {
	GetEntity(id string) *domain.Entity
}

// CombatOutcome - результат внешнего резолвера боя.
// Сам расчет попадания/урона ядру не принадлежит.
type CombatOutcome struct {
	Hit    bool `json:"hit"`
	Roll   int  `json:"roll"`
	Damage int  `json:"damage"`
}

// CombatResolver - шов к внешнему модулю правил. Хендлер атаки вызывает
// его, когда резолвер подключен; без него атака только логируется.
type CombatResolver interface {
	ResolveAttack(attacker, defender *domain.Entity) (CombatOutcome, error)
}

// Context передает хендлеру состояние мира.
// Передаем ссылки, чтобы хендлер мог мутировать данные.
type Context struct {
	Finder   EntityFinder
	World    *domain.WorldState
	Actor    *domain.Entity // Тот, кто выполняет действие
	Resolver CombatResolver // nil = бой не резолвится (см. DESIGN.md)
}

// Result - итог выполнения действия. Хендлер НЕ пишет в логи сервиса
// напрямую, он возвращает данные; false в OK - обычный отказ
// ("попробуй что-то другое"), не исключительная ситуация.
type Result struct {
	OK      bool
	Msg     string
	MsgType string // INFO, COMBAT, ERROR
}

// HandlerFunc - контракт для любого действия (MOVE, ATTACK, IDLE, ...).
type HandlerFunc func(ctx Context, action domain.Action) Result

// Fail - вспомогательный отказ с сообщением.
func Fail(msg string) Result {
	return Result{OK: false, Msg: msg, MsgType: "ERROR"}
}

// OK - пустой успешный результат.
func OK() Result {
	return Result{OK: true}
}
