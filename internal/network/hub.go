package network

import (
	"sync"

	"github.com/scottfrye/dnd/pkg/api"
)

// Broadcaster занимается только рассылкой сообщений подписчикам.
// Подписчик - websocket-клиент: игрок, привязанный к сущности,
// или наблюдатель без сущности.
type Broadcaster struct {
	mu sync.RWMutex
	// ключ - идентификатор подключения (для игроков = ID сущности)
	subscribers map[string]chan api.ServerResponse
}

func NewBroadcaster() *Broadcaster {
	return &Broadcaster{
		subscribers: make(map[string]chan api.ServerResponse),
	}
}

// Register создает личный канал подписчика. Старый канал с тем же
// ключом закрывается: повторный логин вытесняет предыдущее подключение.
func (b *Broadcaster) Register(id string) chan api.ServerResponse {
	b.mu.Lock()
	defer b.mu.Unlock()

	if old, ok := b.subscribers[id]; ok {
		close(old)
	}

	ch := make(chan api.ServerResponse, 100)
	b.subscribers[id] = ch
	return ch
}

// Unregister удаляет подписчика и закрывает его канал.
func (b *Broadcaster) Unregister(id string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if ch, ok := b.subscribers[id]; ok {
		close(ch)
		delete(b.subscribers, id)
	}
}

// SendTo отправляет сообщение конкретному подписчику (unicast).
// Переполненный канал молча пропускается: медленный клиент не должен
// тормозить шаг симуляции.
func (b *Broadcaster) SendTo(id string, msg api.ServerResponse) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if ch, ok := b.subscribers[id]; ok {
		select {
		case ch <- msg:
		default:
		}
	}
}

// Broadcast отправляет сообщение всем подписчикам.
func (b *Broadcaster) Broadcast(msg api.ServerResponse) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, ch := range b.subscribers {
		select {
		case ch <- msg:
		default:
		}
	}
}

// HasSubscriber проверяет, подключен ли кто-то под данным ключом.
func (b *Broadcaster) HasSubscriber(id string) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	_, ok := b.subscribers[id]
	return ok
}

// SubscriberCount возвращает количество активных подписчиков.
func (b *Broadcaster) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers)
}
