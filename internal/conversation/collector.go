// Package conversation implements the per-chat prompt slot used by
// multi-step dialogues: a flow arms an expectation for the next inbound
// message from a chat, and the next message consumes it.
package conversation

import "sync"

// ReplyHandler is the continuation invoked with the next inbound text
// from the chat it was armed for.
type ReplyHandler func(text string)

// PromptStore holds at most one armed prompt per chat. Implementations
// must replace/consume slots as whole records.
type PromptStore interface {
	// Put arms a prompt for chatID, overwriting any existing one.
	Put(chatID int64, h ReplyHandler)
	// Take removes and returns the armed prompt, if any.
	Take(chatID int64) (ReplyHandler, bool)
}

// MemoryPromptStore is a process-wide, mutex-guarded PromptStore.
type MemoryPromptStore struct {
	mu    sync.Mutex
	slots map[int64]ReplyHandler
}

func NewMemoryPromptStore() *MemoryPromptStore {
	return &MemoryPromptStore{slots: make(map[int64]ReplyHandler)}
}

func (s *MemoryPromptStore) Put(chatID int64, h ReplyHandler) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.slots[chatID] = h
}

func (s *MemoryPromptStore) Take(chatID int64) (ReplyHandler, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	h, ok := s.slots[chatID]
	if ok {
		delete(s.slots, chatID)
	}
	return h, ok
}

// Collector coordinates prompt arming and delivery for all chats.
type Collector struct {
	store PromptStore
}

func NewCollector(store PromptStore) *Collector {
	return &Collector{store: store}
}

// Arm registers onReply as the interpretation of the next message from
// chatID. Last arm wins: an earlier armed prompt for the same chat is
// discarded without notifying its initiator. Prompts never time out; a
// slot stays armed until a message arrives or another flow re-arms it.
func (c *Collector) Arm(chatID int64, onReply ReplyHandler) {
	c.store.Put(chatID, onReply)
}

// Deliver routes an inbound message to the armed prompt, consuming the
// slot before the handler runs so a handler may arm the next step of a
// chain. Returns false when no prompt was armed; such messages are not
// input to any flow.
func (c *Collector) Deliver(chatID int64, text string) bool {
	h, ok := c.store.Take(chatID)
	if !ok {
		return false
	}
	h(text)
	return true
}
