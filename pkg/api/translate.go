package api

import (
	"encoding/json"
	"fmt"

	"github.com/scottfrye/dnd/internal/domain"
)

// decodePayload разбирает payload в конкретный DTO и гоняет его через
// Validate, если DTO умеет проверяться.
func decodePayload[T any](raw json.RawMessage) (T, error) {
	var payload T
	if len(raw) == 0 {
		return payload, fmt.Errorf("payload is required")
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return payload, fmt.Errorf("invalid payload: %w", err)
	}
	if v, ok := any(payload).(Validator); ok {
		if err := v.Validate(); err != nil {
			return payload, err
		}
	}
	return payload, nil
}

// ToAction переводит команду клиента во внутреннее действие.
// LOGIN сюда не попадает: его обрабатывает транспортный слой.
func (c ClientCommand) ToAction() (domain.Action, error) {
	actionType := domain.ParseAction(c.Action)

	switch actionType {
	case domain.ActionMove:
		payload, err := decodePayload[MovePayload](c.Payload)
		if err != nil {
			return domain.Action{}, err
		}
		return domain.MoveToward(domain.Position{X: payload.X, Y: payload.Y}), nil

	case domain.ActionAttack:
		payload, err := decodePayload[AttackPayload](c.Payload)
		if err != nil {
			return domain.Action{}, err
		}
		return domain.AttackTarget(payload.TargetID), nil

	case domain.ActionIdle:
		return domain.Idle(), nil

	default:
		return domain.Action{}, fmt.Errorf("unknown action %q", c.Action)
	}
}

// SnapshotResponse собирает UPDATE-сообщение из снимка мира.
func SnapshotResponse(snap domain.WorldSnapshot, clock *ClockView) ServerResponse {
	resp := ServerResponse{
		Type:  "UPDATE",
		Tick:  snap.Time,
		Clock: clock,
	}
	for _, e := range snap.Entities {
		view := EntityView{ID: e.ID, Properties: e.Properties}
		view.Pos.X = e.Position.X
		view.Pos.Y = e.Position.Y
		view.Pos.LocationID = e.Position.LocationID
		resp.Entities = append(resp.Entities, view)
	}
	return resp
}
