// Copyright 2026 Teradata
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
// Package pubsub provides typed events and a synchronous broker for them.
package pubsub

// EventType represents the type of event.
type EventType int

const (
	// CreatedEvent indicates something appeared, e.g. the balloon was shown.
	CreatedEvent EventType = iota
	// UpdatedEvent indicates existing state changed, e.g. a new visible range.
	UpdatedEvent
	// DeletedEvent indicates something went away, e.g. the balloon was hidden.
	DeletedEvent
)

func (t EventType) String() string {
	switch t {
	case CreatedEvent:
		return "created"
	case UpdatedEvent:
		return "updated"
	case DeletedEvent:
		return "deleted"
	default:
		return "unknown"
	}
}

// Event wraps a payload with type information.
type Event[T any] struct {
	Type    EventType
	Payload T
}

// NewCreatedEvent creates a new "created" event.
func NewCreatedEvent[T any](payload T) Event[T] {
	return Event[T]{Type: CreatedEvent, Payload: payload}
}

// NewUpdatedEvent creates a new "updated" event.
func NewUpdatedEvent[T any](payload T) Event[T] {
	return Event[T]{Type: UpdatedEvent, Payload: payload}
}

// NewDeletedEvent creates a new "deleted" event.
func NewDeletedEvent[T any](payload T) Event[T] {
	return Event[T]{Type: DeletedEvent, Payload: payload}
}

// Broker delivers events of one payload type. Publish calls every subscriber
// before it returns, in the order they subscribed. A Broker belongs to a single
// goroutine and is not safe for concurrent use.
type Broker[T any] struct {
	nextID int
	subs   []subscription[T]
}

type subscription[T any] struct {
	id int
	fn func(Event[T])
}

// NewBroker creates an empty broker.
func NewBroker[T any]() *Broker[T] {
	return &Broker[T]{}
}

// Subscribe registers fn and returns a function that removes it again.
func (b *Broker[T]) Subscribe(fn func(Event[T])) (unsubscribe func()) {
	b.nextID++
	id := b.nextID
	b.subs = append(b.subs, subscription[T]{id: id, fn: fn})
	return func() {
		for i, s := range b.subs {
			if s.id == id {
				b.subs = append(b.subs[:i:i], b.subs[i+1:]...)
				return
			}
		}
	}
}

// Publish delivers the event. Subscribers added or removed while it runs take
// effect from the next Publish.
func (b *Broker[T]) Publish(ev Event[T]) {
	subs := b.subs
	for _, s := range subs {
		s.fn(ev)
	}
}

// Len returns the number of subscribers.
func (b *Broker[T]) Len() int {
	return len(b.subs)
}
