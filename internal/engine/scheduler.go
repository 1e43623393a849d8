package engine

import (
	"fmt"
	"sort"

	"github.com/scottfrye/dnd/pkg/logger"
)

// EventCallback - отложенная работа. Аргументы связываются замыканием при
// планировании. Возвращенная ошибка (или паника) записывается в результат
// диспетчеризации и не останавливает остальные события.
type EventCallback func() (any, error)

// scheduledEvent - одно запланированное событие.
type scheduledEvent struct {
	tick     int
	seq      int // порядковый номер планирования, для стабильной сортировки
	callback EventCallback
	eventID  string
}

// EventResult - итог одного сработавшего события: либо Value, либо Err.
type EventResult struct {
	EventID string
	Value   any
	Err     error
}

// PendingEvent - read-only строка диагностики по неотработанному событию.
type PendingEvent struct {
	Tick    int    `json:"tick"`
	EventID string `json:"event_id"`
}

// EventSystem - самостоятельный диспетчер отложенных колбеков: запланируй
// на будущий тик, потом отдай ему текущий тик и получи все созревшее
// в детерминированном порядке.
//
// События лежат в плоском списке, а не в куче: типичная нагрузка - десятки
// событий с частой отменой по ID, и куча только усложнила бы cancel.
// Реализация под большие объемы должна подставить приоритетную очередь
// с ключом (tick, seq), сохранив тот же контракт порядка.
type EventSystem struct {
	events  []*scheduledEvent
	nextID  int // для генерации event_<n>
	nextSeq int
}

// NewEventSystem создает пустой диспетчер.
func NewEventSystem() *EventSystem {
	logger.Log.Debug("EventSystem initialized")
	return &EventSystem{}
}

// Schedule планирует событие на тик tick. Пустой eventID означает
// "сгенерируй сам": ID вида event_<n> выдаются детерминированно в порядке
// вызовов. Возвращает итоговый ID события.
//
// Несколько событий могут делить один тик; сработают они в порядке
// планирования.
func (es *EventSystem) Schedule(tick int, callback EventCallback, eventID string) (string, error) {
	if tick < 0 {
		return "", fmt.Errorf("schedule: %w (got %d)", ErrNegativeTicks, tick)
	}

	if eventID == "" {
		eventID = fmt.Sprintf("event_%d", es.nextID)
		es.nextID++
	}

	es.events = append(es.events, &scheduledEvent{
		tick:     tick,
		seq:      es.nextSeq,
		callback: callback,
		eventID:  eventID,
	})
	es.nextSeq++

	logger.Log.WithFields(map[string]any{
		"event_id": eventID,
		"tick":     tick,
	}).Debug("Scheduled event")

	return eventID, nil
}

// Tick отрабатывает все события, созревшие к currentTick: и те, что должны
// сработать сейчас, и просроченные с прошлых вызовов - вызывать Tick на
// каждый тик не обязательно. Порядок строгий: (тик, порядок планирования).
//
// Ошибка или паника колбека записывается в результат рядом с его event_id
// и не мешает остальным: одно сломанное событие никогда не блокирует
// соседей. Сработавшие события удаляются, так что повторный вызов с тем же
// аргументом вернет пустой список.
func (es *EventSystem) Tick(currentTick int) []EventResult {
	var due []*scheduledEvent
	for _, e := range es.events {
		if e.tick <= currentTick {
			due = append(due, e)
		}
	}

	if len(due) == 0 {
		return nil
	}

	// Сортировка по (тик, порядок планирования), а не по порядку хранения
	sort.Slice(due, func(i, j int) bool {
		if due[i].tick != due[j].tick {
			return due[i].tick < due[j].tick
		}
		return due[i].seq < due[j].seq
	})

	results := make([]EventResult, 0, len(due))
	fired := make(map[*scheduledEvent]bool, len(due))
	for _, e := range due {
		logger.Log.WithFields(map[string]any{
			"event_id": e.eventID,
			"tick":     currentTick,
		}).Info("Dispatching event")
		results = append(results, runEvent(e))
		fired[e] = true
	}

	// Колбеки сами могут планировать и отменять события, поэтому очередь
	// пересобирается из актуального состояния после диспетчеризации:
	// выбрасываем только сработавшее. Запланированное изнутри колбека на
	// текущий тик созреет при следующем вызове Tick.
	remaining := make([]*scheduledEvent, 0, len(es.events))
	for _, e := range es.events {
		if !fired[e] {
			remaining = append(remaining, e)
		}
	}
	es.events = remaining
	return results
}

// runEvent вызывает колбек, превращая панику в записанную ошибку.
func runEvent(e *scheduledEvent) (res EventResult) {
	res.EventID = e.eventID

	defer func() {
		if r := recover(); r != nil {
			res.Err = fmt.Errorf("event %q panicked: %v", e.eventID, r)
			logger.Log.WithField("event_id", e.eventID).Errorf("Event panic: %v", r)
		}
	}()

	value, err := e.callback()
	if err != nil {
		logger.Log.WithField("event_id", e.eventID).Errorf("Event failed: %v", err)
		res.Err = err
		return res
	}
	res.Value = value
	return res
}

// Cancel снимает еще не сработавшее событие по ID.
// Отмена сработавшего или неизвестного ID - no-op с результатом false.
func (es *EventSystem) Cancel(eventID string) bool {
	for i, e := range es.events {
		if e.eventID == eventID {
			es.events = append(es.events[:i], es.events[i+1:]...)
			logger.Log.WithField("event_id", eventID).Debug("Cancelled event")
			return true
		}
	}
	return false
}

// Clear снимает все события и возвращает их число.
func (es *EventSystem) Clear() int {
	count := len(es.events)
	es.events = nil
	logger.Log.WithField("count", count).Debug("Cleared event queue")
	return count
}

// Pending возвращает снимок оставшихся событий для диагностики.
func (es *EventSystem) Pending() []PendingEvent {
	pending := make([]PendingEvent, 0, len(es.events))
	for _, e := range es.events {
		pending = append(pending, PendingEvent{Tick: e.tick, EventID: e.eventID})
	}
	return pending
}
