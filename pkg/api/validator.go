package api

import "errors"

// Validator - интерфейс, который реализуют DTO с проверяемыми полями.
type Validator interface {
	Validate() error
}

func (p AttackPayload) Validate() error {
	if p.TargetID == "" {
		return errors.New("target_id is required")
	}
	return nil
}

func (c ClientCommand) Validate() error {
	if c.Action == "" {
		return errors.New("action is required")
	}
	return nil
}
