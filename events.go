package dungeon

import (
	"slices"
	"sync"
)

// EventType names a change of the state.
type EventType string

const (
	// Run timer events.
	TargetUpdated EventType = "TARGET_UPDATED"
	TimerStarted  EventType = "TIMER_STARTED"
	TimerStopped  EventType = "TIMER_STOPPED"
	RecordAdded   EventType = "RECORD_ADDED"
	RecordUndone  EventType = "RECORD_UNDONE"
	RecordEdited  EventType = "RECORD_EDITED"
	AppReset      EventType = "APP_RESET"

	// History events.
	SessionSaved   EventType = "SESSION_SAVED"
	HistoryDeleted EventType = "HISTORY_DELETED"
	HistoryCleared EventType = "HISTORY_CLEARED"
	DataImported   EventType = "DATA_IMPORTED"

	// Market events.
	MarketItemsUpdated     EventType = "MARKET_ITEMS_UPDATED"
	MarketTradeAdded       EventType = "MARKET_TRADE_ADDED"
	MarketInventoryUpdated EventType = "MARKET_INVENTORY_UPDATED"
)

// EventData is the payload of an event.
type EventData interface {
	EventType() EventType
}

// Signal is the payload of the events that carry no data.
type Signal struct {
	Type EventType
}

func (s Signal) EventType() EventType { return s.Type }

// TargetUpdatedData is the payload of TARGET_UPDATED.
type TargetUpdatedData struct {
	Target int
}

func (TargetUpdatedData) EventType() EventType { return TargetUpdated }

// RecordAddedData is the payload of RECORD_ADDED.
type RecordAddedData struct {
	Record     RunRecord
	Count      int
	IsComplete bool
}

func (RecordAddedData) EventType() EventType { return RecordAdded }

// RecordUndoneData is the payload of RECORD_UNDONE.
type RecordUndoneData struct {
	Count           int
	IsNowIncomplete bool
}

func (RecordUndoneData) EventType() EventType { return RecordUndone }

// RecordEditedData is the payload of RECORD_EDITED.
type RecordEditedData struct {
	Index int
	Time  int64
}

func (RecordEditedData) EventType() EventType { return RecordEdited }

// SessionSavedData is the payload of SESSION_SAVED.
type SessionSavedData struct {
	Session Session
}

func (SessionSavedData) EventType() EventType { return SessionSaved }

// HistoryDeletedData is the payload of HISTORY_DELETED.
type HistoryDeletedData struct {
	ID ID
}

func (HistoryDeletedData) EventType() EventType { return HistoryDeleted }

// Handler receives the payload of an event.
type Handler func(EventData)

// Notifier is a publish/subscribe of named events.
type Notifier interface {
	Subscribe(t EventType, h Handler)
	Publish(t EventType, data EventData)
}

// Bus is a synchronous multicast Notifier.
//
// Publish calls the handlers of the event in their subscription order, in
// the goroutine of the caller. A handler may subscribe or publish, there is
// no re-entrancy guard.
type Bus struct {
	mu       sync.RWMutex
	handlers map[EventType][]Handler
}

// NewBus returns an empty Bus.
func NewBus() *Bus {
	return &Bus{handlers: make(map[EventType][]Handler)}
}

func (b *Bus) Subscribe(t EventType, h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[t] = append(b.handlers[t], h)
}

// Publish calls every handler of t with data. A nil data is replaced by a [Signal].
func (b *Bus) Publish(t EventType, data EventData) {
	if data == nil {
		data = Signal{Type: t}
	}
	b.mu.RLock()
	handlers := slices.Clone(b.handlers[t])
	b.mu.RUnlock()
	for _, h := range handlers {
		h(data)
	}
}
