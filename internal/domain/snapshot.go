package domain

import "fmt"

// WorldSnapshot - плоское представление мира для персистентности.
// Внешний слой сериализации (YAML/JSON) пишет и читает эту структуру
// как есть; сам формат файла - не забота ядра.
type WorldSnapshot struct {
	Time     int              `json:"time" yaml:"time"`
	Entities []EntitySnapshot `json:"entities" yaml:"entities"`
}

// EntitySnapshot - плоское представление одной сущности.
type EntitySnapshot struct {
	ID         string         `json:"id" yaml:"id"`
	Position   Position       `json:"position" yaml:"position"`
	Properties map[string]any `json:"properties" yaml:"properties"`
}

// Snapshot сериализует мир в плоскую структуру.
// Properties копируются поверхностно: снапшот предназначен для немедленной
// записи на диск, а не для длительного хранения рядом с живым миром.
func (w *WorldState) Snapshot() WorldSnapshot {
	snap := WorldSnapshot{
		Time:     w.time,
		Entities: make([]EntitySnapshot, 0, len(w.entities)),
	}
	for _, e := range w.entities {
		props := make(map[string]any, len(e.Properties))
		for k, v := range e.Properties {
			props[k] = v
		}
		snap.Entities = append(snap.Entities, EntitySnapshot{
			ID:         e.ID,
			Position:   e.Pos,
			Properties: props,
		})
	}
	return snap
}

// FromSnapshot восстанавливает мир из плоской структуры.
// Сущности проходят через обычный AddEntity, так что инвариант
// уникальности ID действует и при загрузке: битый файл с дублями
// отклоняется, а не чинится молча. Отсутствующее время дает 0.
func FromSnapshot(snap WorldSnapshot) (*WorldState, error) {
	world := NewWorldState()
	world.time = snap.Time

	for _, es := range snap.Entities {
		entity := &Entity{
			ID:         es.ID,
			Pos:        es.Position,
			Properties: es.Properties,
		}
		if entity.Properties == nil {
			entity.Properties = make(map[string]any)
		}
		if err := world.AddEntity(entity); err != nil {
			return nil, fmt.Errorf("restore world: %w", err)
		}
	}
	return world, nil
}
