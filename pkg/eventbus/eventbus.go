package eventbus

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Event представляет собой любое событие в системе.
type Event interface {
	Name() string
}

// Listener - обработчик событий.
type Listener func(ctx context.Context, event Event) error

// Bus - шина событий. Слушатели вызываются асинхронно.
type Bus struct {
	listeners map[string][]Listener
	mu        sync.RWMutex
	inflight  sync.WaitGroup
	timeout   time.Duration
	logger    *zap.Logger
}

// New создает новую шину событий.
func New(logger *zap.Logger) *Bus {
	return &Bus{
		listeners: make(map[string][]Listener),
		timeout:   1 * time.Minute,
		logger:    logger,
	}
}

// Subscribe подписывает слушателя на определенное событие.
func (b *Bus) Subscribe(eventName string, listener Listener) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.listeners[eventName] = append(b.listeners[eventName], listener)
}

// Publish публикует событие. Контекст запроса не передается слушателям:
// запрос может завершиться раньше, чем они отработают.
func (b *Bus) Publish(_ context.Context, event Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	eventName := event.Name()
	for _, listener := range b.listeners[eventName] {
		b.inflight.Add(1)
		go func(l Listener) {
			defer b.inflight.Done()

			ctxWithTimeout, cancel := context.WithTimeout(context.Background(), b.timeout)
			defer cancel()

			if err := l(ctxWithTimeout, event); err != nil {
				b.logger.Error("Ошибка в обработчике события",
					zap.String("event", eventName),
					zap.Error(err),
				)
			}
		}(listener)
	}
}

// Wait блокируется, пока не завершатся все запущенные обработчики.
// Используется при остановке сервера и в тестах.
func (b *Bus) Wait() {
	b.inflight.Wait()
}
