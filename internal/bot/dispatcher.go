package bot

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/eosbot/internal/telegram"
)

// queueSize bounds the per-chat backlog. Enqueueing blocks when a chat's
// queue is full, which back-pressures the poll loop instead of dropping
// updates.
const queueSize = 32

// Dispatcher fans updates out to one worker goroutine per chat, so updates
// of the same chat are handled in arrival order while different chats
// proceed concurrently.
type Dispatcher struct {
	handler func(ctx context.Context, upd *telegram.Update)

	mu     sync.Mutex
	queues map[int64]chan *telegram.Update
	wg     sync.WaitGroup
	closed bool
}

func NewDispatcher(handler func(ctx context.Context, upd *telegram.Update)) *Dispatcher {
	return &Dispatcher{
		handler: handler,
		queues:  make(map[int64]chan *telegram.Update),
	}
}

// Dispatch routes the update to its chat's queue, starting the chat worker
// on first use. Updates without a chat are dropped.
func (d *Dispatcher) Dispatch(ctx context.Context, upd *telegram.Update) {
	chatID := upd.ChatID()
	if chatID == 0 {
		return
	}

	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	queue, ok := d.queues[chatID]
	if !ok {
		queue = make(chan *telegram.Update, queueSize)
		d.queues[chatID] = queue
		d.wg.Add(1)
		go d.worker(ctx, queue)
	}
	d.mu.Unlock()

	select {
	case queue <- upd:
	case <-ctx.Done():
	}
}

func (d *Dispatcher) worker(ctx context.Context, queue chan *telegram.Update) {
	defer d.wg.Done()
	for {
		select {
		case upd, ok := <-queue:
			if !ok {
				return
			}
			d.handler(ctx, upd)
		case <-ctx.Done():
			return
		}
	}
}

// Close stops accepting updates and waits for in-flight handlers.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	for _, queue := range d.queues {
		close(queue)
	}
	d.mu.Unlock()
	d.wg.Wait()
}
