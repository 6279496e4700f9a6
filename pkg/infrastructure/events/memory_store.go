package events

import (
	"sync"

	"go.uber.org/zap"
)

// InMemoryEventStore keeps every stream in process memory. Handlers run
// synchronously after the append has been committed, outside the lock.
// With a capacity set, the oldest events are evicted once the log is full;
// positions passed to ReadAllEvents stay absolute across evictions.
type InMemoryEventStore struct {
	streams     map[string][]Event
	versions    map[string]int
	subscribers map[string][]EventHandler
	mutex       sync.RWMutex
	allEvents   []Event
	evicted     int
	capacity    int
	logger      *zap.Logger
}

// StoreOption configures an InMemoryEventStore
type StoreOption func(*InMemoryEventStore)

// WithCapacity bounds the number of retained events. Zero or less keeps all.
func WithCapacity(n int) StoreOption {
	return func(s *InMemoryEventStore) {
		if n > 0 {
			s.capacity = n
		}
	}
}

func NewInMemoryEventStore(logger *zap.Logger, opts ...StoreOption) *InMemoryEventStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &InMemoryEventStore{
		streams:     make(map[string][]Event),
		versions:    make(map[string]int),
		subscribers: make(map[string][]EventHandler),
		allEvents:   make([]Event, 0),
		logger:      logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *InMemoryEventStore) AppendEvent(streamID string, event Event) error {
	s.mutex.Lock()
	s.versions[streamID]++
	versioned := BaseEvent{
		EventType:    event.Type(),
		Stream:       streamID,
		EventData:    event.Data(),
		EventTime:    event.Timestamp(),
		EventVersion: s.versions[streamID],
	}
	s.streams[streamID] = append(s.streams[streamID], versioned)
	s.allEvents = append(s.allEvents, versioned)
	s.evict()
	handlers := append([]EventHandler(nil), s.subscribers[versioned.EventType]...)
	s.mutex.Unlock()

	s.notifySubscribers(handlers, versioned)
	return nil
}

// evict drops the oldest events beyond capacity. Callers hold the write lock.
func (s *InMemoryEventStore) evict() {
	if s.capacity == 0 {
		return
	}
	for len(s.allEvents) > s.capacity {
		oldest := s.allEvents[0]
		s.allEvents[0] = nil
		s.allEvents = s.allEvents[1:]
		s.evicted++

		stream := s.streams[oldest.StreamID()][1:]
		if len(stream) == 0 {
			delete(s.streams, oldest.StreamID())
			delete(s.versions, oldest.StreamID())
			continue
		}
		s.streams[oldest.StreamID()] = stream
	}
}

func (s *InMemoryEventStore) ReadEvents(streamID string, fromVersion int) ([]Event, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	events := make([]Event, 0)
	for _, event := range s.streams[streamID] {
		if event.Version() >= fromVersion {
			events = append(events, event)
		}
	}
	return events, nil
}

func (s *InMemoryEventStore) ReadAllEvents(fromPosition int) ([]Event, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	index := fromPosition - s.evicted
	if index < 0 {
		index = 0
	}
	if index >= len(s.allEvents) {
		return []Event{}, nil
	}
	return append([]Event(nil), s.allEvents[index:]...), nil
}

// Len returns the number of retained events
func (s *InMemoryEventStore) Len() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return len(s.allEvents)
}

func (s *InMemoryEventStore) Subscribe(eventTypes []string, handler EventHandler) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	for _, eventType := range eventTypes {
		s.subscribers[eventType] = append(s.subscribers[eventType], handler)
	}
	return nil
}

func (s *InMemoryEventStore) Unsubscribe(handler EventHandler) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	for eventType, handlers := range s.subscribers {
		kept := make([]EventHandler, 0, len(handlers))
		for _, h := range handlers {
			if h != handler {
				kept = append(kept, h)
			}
		}
		s.subscribers[eventType] = kept
	}
	return nil
}

func (s *InMemoryEventStore) notifySubscribers(handlers []EventHandler, event Event) {
	for _, handler := range handlers {
		if !handler.CanHandle(event.Type()) {
			continue
		}
		if err := handler.Handle(event); err != nil {
			s.logger.Warn("event handler failed",
				zap.String("event_type", event.Type()),
				zap.String("stream_id", event.StreamID()),
				zap.Error(err))
		}
	}
}
