package telegram

import (
	"context"

	pkgTelegram "github.com/Sajidddd11/telegramtodo/pkg/telegram"
)

// chatQueue holds the messages of one chat waiting for its worker.
type chatQueue struct {
	pending []*pkgTelegram.Message
}

// enqueue hands msg to the worker of its chat, starting one when the chat is
// idle. A chat's messages are handled one at a time in arrival order, while
// different chats run concurrently.
func (h *handler) enqueue(ctx context.Context, msg *pkgTelegram.Message) {
	id := msg.Chat.ID

	h.qmu.Lock()
	q, busy := h.queues[id]
	if !busy {
		q = &chatQueue{}
		h.queues[id] = q
	}
	q.pending = append(q.pending, msg)
	h.qmu.Unlock()

	if busy {
		return
	}
	h.wg.Add(1)
	go h.drain(ctx, id, q)
}

// drain runs the chat's messages until its queue is empty.
func (h *handler) drain(ctx context.Context, chatID int64, q *chatQueue) {
	defer h.wg.Done()
	for {
		h.qmu.Lock()
		if len(q.pending) == 0 || ctx.Err() != nil {
			if n := len(q.pending); n > 0 {
				h.l.Warnf(ctx, "telegram handler: dropped %d queued messages of chat %d: %v", n, chatID, ctx.Err())
			}
			delete(h.queues, chatID)
			h.qmu.Unlock()
			return
		}
		msg := q.pending[0]
		q.pending[0] = nil
		q.pending = q.pending[1:]
		h.qmu.Unlock()

		h.handleMessage(ctx, msg)
	}
}
