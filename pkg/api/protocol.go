package api

import (
	"encoding/json"
)

// --- СЕРВЕР -> КЛИЕНТ ---

// ServerResponse - корневой объект, который сервер отправляет клиенту.
// Полный снимок мира: наблюдатели и игроки получают одинаковую картину,
// скрытой информации в симуляции нет.
type ServerResponse struct {
	// Type тип сообщения: UPDATE (снимок мира) или LOG (сообщение).
	Type string `json:"type"`

	// Tick текущее глобальное время симуляции.
	Tick int `json:"tick"`

	// Clock то же время, разложенное на дни/часы/минуты/секунды.
	Clock *ClockView `json:"clock,omitempty"`

	// Entities все сущности мира.
	Entities []EntityView `json:"entities,omitempty"`

	// Logs новые сообщения с прошлого обновления.
	Logs []LogEntry `json:"logs,omitempty"`
}

// ClockView - DTO игровых часов.
type ClockView struct {
	Days    int `json:"days"`
	Hours   int `json:"hours"`
	Minutes int `json:"minutes"`
	Seconds int `json:"seconds"`
}

// EntityView - DTO игровой сущности.
type EntityView struct {
	ID string `json:"id"`

	Pos struct {
		X          int    `json:"x"`
		Y          int    `json:"y"`
		LocationID string `json:"location_id"`
	} `json:"pos"`

	// Properties произвольные свойства сущности (hp, behavior, ...).
	Properties map[string]any `json:"properties,omitempty"`
}

// LogEntry - одна запись в игровом логе.
type LogEntry struct {
	Text      string `json:"text"`
	Type      string `json:"type"`      // INFO, COMBAT, ERROR
	Timestamp int64  `json:"timestamp"` // Unix milliseconds
}

// --- КЛИЕНТ -> СЕРВЕР ---

// ClientCommand - корневой объект для всех сообщений от клиента к серверу.
type ClientCommand struct {
	// Token ID сущности, от имени которой выполняется действие.
	// Обязателен только для первого сообщения LOGIN.
	Token string `json:"token,omitempty"`

	// Action название действия: LOGIN, MOVE, ATTACK, IDLE.
	Action string `json:"action"`

	// Payload JSON-объект с данными действия. Структура зависит от Action.
	Payload json.RawMessage `json:"payload,omitempty"`
}

// --- Payloads ---

// MovePayload - целевая точка для MOVE. Сервер сам делает один шаг
// в её сторону, телепортации через этот канал нет.
type MovePayload struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// AttackPayload - цель для ATTACK.
type AttackPayload struct {
	TargetID string `json:"target_id"`
}
