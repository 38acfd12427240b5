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

// Package frame paces pointer handling to the display refresh rate.
//
// Nothing in here starts a timer or a goroutine. Callers pass the event time with
// every call and drive trailing work with Flush from their own frame tick, so all
// callbacks run on the caller's goroutine in a deterministic order.
package frame

import "time"

// Interval60Hz is the frame budget at 60 frames per second.
const Interval60Hz = time.Second / 60

// Throttle runs at most one call per interval. A call arriving inside the interval
// replaces any pending call and runs on the first Flush (or Call) after the
// interval has elapsed, so the final position of a fast gesture is never lost.
type Throttle struct {
	interval time.Duration
	last     time.Time
	ran      bool
	pending  func()
}

// NewThrottle creates a throttle. A non-positive interval disables throttling.
func NewThrottle(interval time.Duration) *Throttle {
	return &Throttle{interval: interval}
}

// Call runs fn now if the interval since the last run has elapsed, otherwise
// keeps it as the pending call. It reports whether fn ran.
func (t *Throttle) Call(now time.Time, fn func()) bool {
	if t.ready(now) {
		t.pending = nil
		t.run(now, fn)
		return true
	}
	t.pending = fn
	return false
}

// Flush runs the pending call if its interval has elapsed. It reports whether
// anything ran.
func (t *Throttle) Flush(now time.Time) bool {
	if t.pending == nil || !t.ready(now) {
		return false
	}
	fn := t.pending
	t.pending = nil
	t.run(now, fn)
	return true
}

// Drain runs the pending call immediately regardless of the interval.
func (t *Throttle) Drain(now time.Time) bool {
	if t.pending == nil {
		return false
	}
	fn := t.pending
	t.pending = nil
	t.run(now, fn)
	return true
}

// Cancel drops the pending call.
func (t *Throttle) Cancel() {
	t.pending = nil
}

// Pending reports whether a call is waiting for the next frame.
func (t *Throttle) Pending() bool {
	return t.pending != nil
}

func (t *Throttle) ready(now time.Time) bool {
	return !t.ran || t.interval <= 0 || now.Sub(t.last) >= t.interval
}

func (t *Throttle) run(now time.Time, fn func()) {
	t.last = now
	t.ran = true
	fn()
}

// Debounce runs only the last call of a burst, once delay has passed without a
// newer call. It is trailing-edge only.
type Debounce struct {
	delay    time.Duration
	deadline time.Time
	pending  func()
}

// NewDebounce creates a debouncer.
func NewDebounce(delay time.Duration) *Debounce {
	return &Debounce{delay: delay}
}

// Call schedules fn for now+delay, replacing any scheduled call.
func (d *Debounce) Call(now time.Time, fn func()) {
	d.pending = fn
	d.deadline = now.Add(d.delay)
}

// Flush runs the scheduled call once its deadline has passed.
func (d *Debounce) Flush(now time.Time) bool {
	if d.pending == nil || now.Before(d.deadline) {
		return false
	}
	fn := d.pending
	d.pending = nil
	fn()
	return true
}

// Cancel drops the scheduled call.
func (d *Debounce) Cancel() {
	d.pending = nil
}

// Pending reports whether a call is scheduled.
func (d *Debounce) Pending() bool {
	return d.pending != nil
}
