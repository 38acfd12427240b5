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
package frame

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var t0 = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

func at(ms int) time.Time {
	return t0.Add(time.Duration(ms) * time.Millisecond)
}

func TestThrottle_LeadingAndTrailing(t *testing.T) {
	th := NewThrottle(16 * time.Millisecond)
	var got []int

	assert.True(t, th.Call(at(0), func() { got = append(got, 1) }), "first call runs immediately")
	assert.False(t, th.Call(at(5), func() { got = append(got, 2) }))
	assert.False(t, th.Call(at(10), func() { got = append(got, 3) }))
	assert.True(t, th.Pending())

	assert.False(t, th.Flush(at(12)), "interval not elapsed yet")
	assert.True(t, th.Flush(at(16)))
	assert.False(t, th.Pending())

	assert.Equal(t, []int{1, 3}, got, "only the latest call of the burst is replayed")
}

func TestThrottle_NoInterval(t *testing.T) {
	th := NewThrottle(0)
	n := 0
	for i := 0; i < 5; i++ {
		assert.True(t, th.Call(at(0), func() { n++ }))
	}
	assert.Equal(t, 5, n)
}

func TestThrottle_DrainAndCancel(t *testing.T) {
	th := NewThrottle(time.Second)
	n := 0
	th.Call(at(0), func() { n++ })
	th.Call(at(1), func() { n += 10 })
	assert.True(t, th.Drain(at(2)))
	assert.Equal(t, 11, n)

	th.Call(at(3), func() { n += 100 })
	th.Cancel()
	assert.False(t, th.Flush(at(5000)))
	assert.False(t, th.Drain(at(5000)))
	assert.Equal(t, 11, n)
}

func TestDebounce(t *testing.T) {
	d := NewDebounce(16 * time.Millisecond)
	n := 0

	d.Call(at(0), func() { n++ })
	d.Call(at(10), func() { n += 10 })
	assert.False(t, d.Flush(at(20)), "deadline moved to 26ms by the second call")
	assert.True(t, d.Flush(at(26)))
	assert.Equal(t, 10, n)
	assert.False(t, d.Flush(at(100)))

	d.Call(at(200), func() { n = -1 })
	assert.True(t, d.Pending())
	d.Cancel()
	assert.False(t, d.Flush(at(300)))
	assert.Equal(t, 10, n)
}
