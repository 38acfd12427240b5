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
package pubsub

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBroker_DeliversInSubscriptionOrder(t *testing.T) {
	b := NewBroker[int]()
	var got []string

	b.Subscribe(func(ev Event[int]) { got = append(got, "first") })
	b.Subscribe(func(ev Event[int]) { got = append(got, "second") })
	b.Publish(NewUpdatedEvent(1))

	assert.Equal(t, []string{"first", "second"}, got)
	assert.Equal(t, 2, b.Len())
}

func TestBroker_Unsubscribe(t *testing.T) {
	b := NewBroker[string]()
	var got []string

	unsubA := b.Subscribe(func(ev Event[string]) { got = append(got, "a:"+ev.Payload) })
	b.Subscribe(func(ev Event[string]) { got = append(got, "b:"+ev.Payload) })

	b.Publish(NewCreatedEvent("1"))
	unsubA()
	unsubA()
	b.Publish(NewDeletedEvent("2"))

	assert.Equal(t, []string{"a:1", "b:1", "b:2"}, got)
	assert.Equal(t, 1, b.Len())
}

func TestBroker_UnsubscribeDuringPublish(t *testing.T) {
	b := NewBroker[int]()
	calls := 0

	var unsub func()
	unsub = b.Subscribe(func(Event[int]) {
		calls++
		unsub()
	})
	b.Subscribe(func(Event[int]) { calls++ })

	b.Publish(NewUpdatedEvent(0))
	assert.Equal(t, 2, calls, "snapshot still reaches every subscriber")

	b.Publish(NewUpdatedEvent(0))
	assert.Equal(t, 3, calls)
}

func TestEventType_String(t *testing.T) {
	assert.Equal(t, "created", CreatedEvent.String())
	assert.Equal(t, "updated", UpdatedEvent.String())
	assert.Equal(t, "deleted", DeletedEvent.String())
	assert.Equal(t, "unknown", EventType(42).String())
	assert.Equal(t, UpdatedEvent, NewUpdatedEvent(struct{}{}).Type)
}
