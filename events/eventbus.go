package events

import (
	"sync"
	"time"
)

type Kind string

const (
	StepStarted   Kind = "step_started"
	TxSent        Kind = "tx_sent"
	TxConfirmed   Kind = "tx_confirmed"
	StepFailed    Kind = "step_failed"
	ScriptDone    Kind = "script_done"
	ScriptAborted Kind = "script_aborted"
)

// Event is one progress notification from the deploy script.
type Event struct {
	Kind     Kind      `json:"kind"`
	Step     string    `json:"step,omitempty"`
	TxHash   string    `json:"txHash,omitempty"`
	Contract string    `json:"contract,omitempty"`
	GasUsed  uint64    `json:"gasUsed,omitempty"`
	Error    string    `json:"error,omitempty"`
	Time     time.Time `json:"time"`
}

type EventBus struct {
	mu   sync.RWMutex
	subs []chan Event
}

func NewEventBus() *EventBus {
	return &EventBus{subs: make([]chan Event, 0)}
}

func (b *EventBus) Subscribe() <-chan Event {
	ch := make(chan Event, 64)

	b.mu.Lock()
	b.subs = append(b.subs, ch)
	b.mu.Unlock()

	return ch
}

// Unsubscribe removes ch and closes it.
func (b *EventBus) Unsubscribe(ch <-chan Event) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i, c := range b.subs {
		if c == ch {
			b.subs = append(b.subs[:i], b.subs[i+1:]...)
			close(c)
			return
		}
	}
}

func (b *EventBus) Publish(ev Event) {
	if b == nil {
		return
	}
	if ev.Time.IsZero() {
		ev.Time = time.Now()
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, ch := range b.subs {
		// non-blocking send
		select {
		case ch <- ev:
		default:
		}
	}
}
