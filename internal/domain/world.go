package domain

import (
	"errors"
	"fmt"
	"sort"

	"github.com/scottfrye/dnd/pkg/logger"
)

// ErrDuplicateEntity возвращается при попытке добавить сущность с занятым ID.
// Конфликт регистрации - ошибка программирования, мы никогда не
// переименовываем и не перезаписываем молча.
var ErrDuplicateEntity = errors.New("entity id already exists")

// WorldState - центральный реестр живых сущностей плюс собственный счетчик
// времени. Счетчик здесь проще, чем в TimeSystem: никаких конвертаций
// единиц, только приращение на единицу через Tick().
//
// Весь доступ однопоточный (см. DESIGN.md): WorldState не содержит
// блокировок, многопоточный интегратор обязан взять внешний замок
// на весь шаг симуляции.
type WorldState struct {
	entities map[string]*Entity
	time     int
}

// NewWorldState создает пустой мир со временем 0.
func NewWorldState() *WorldState {
	return &WorldState{
		entities: make(map[string]*Entity),
	}
}

// Time возвращает текущее игровое время в тиках.
func (w *WorldState) Time() int {
	return w.time
}

// AddEntity регистрирует сущность в мире.
// Возвращает ErrDuplicateEntity, если ID уже занят; существующая сущность
// при этом остается нетронутой.
func (w *WorldState) AddEntity(e *Entity) error {
	if _, exists := w.entities[e.ID]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateEntity, e.ID)
	}
	w.entities[e.ID] = e
	logger.Log.WithField("entity_id", e.ID).Debug("Added entity")
	return nil
}

// RemoveEntity удаляет сущность из мира.
// Возвращает true, если сущность была и удалена.
func (w *WorldState) RemoveEntity(id string) bool {
	if _, exists := w.entities[id]; !exists {
		return false
	}
	delete(w.entities, id)
	logger.Log.WithField("entity_id", id).Debug("Removed entity")
	return true
}

// GetEntity ищет сущность по ID. Отсутствие - ожидаемый исход поиска
// в реестре, поэтому возвращаем nil, а не ошибку. Вызывающий обязан
// проверить результат.
func (w *WorldState) GetEntity(id string) *Entity {
	return w.entities[id]
}

// AllEntityIDs возвращает ID всех зарегистрированных сущностей по
// возрастанию. Сортировка делает обходы мира воспроизводимыми: итерация
// по map каждый раз дает новый порядок.
func (w *WorldState) AllEntityIDs() []string {
	ids := make([]string, 0, len(w.entities))
	for id := range w.entities {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// EntityCount возвращает число живых сущностей (для диагностики и снапшотов).
func (w *WorldState) EntityCount() int {
	return len(w.entities)
}

// Tick продвигает время мира ровно на один тик и возвращает новое значение.
// Это собственные часы мира, независимые от TimeSystem; именно их
// дергает GameEngine.
func (w *WorldState) Tick() int {
	w.time++
	logger.Log.WithField("time", w.time).Debug("World tick")
	return w.time
}
