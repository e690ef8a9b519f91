package helpers

import (
	"strings"
	"time"
)

var DoSanityCheck = true

// SanityCheck panics when assertion fails. Only internal invariants are
// checked this way; bad input is reported as an error.
func SanityCheck(assertion func() bool, messages ...string) {
	if DoSanityCheck && !assertion() {
		if len(messages) == 0 {
			messages = append(messages, "assertion violated")
		}
		panic(strings.Join(messages, " "))
	}
}

// Overhead is a stopwatch that can be paused, used to time the engine alone
// while trace decoding runs in between.
type Overhead struct {
	total   time.Duration
	since   time.Time
	running bool
	spans   int
}

func (o *Overhead) Reset() {
	*o = Overhead{}
}

func (o *Overhead) Paused() bool {
	return !o.running
}

func (o *Overhead) Resume() {
	if o.running {
		return
	}
	o.running = true
	o.since = time.Now()
	o.spans++
}

func (o *Overhead) Pause() {
	if !o.running {
		return
	}
	o.total += time.Since(o.since)
	o.running = false
}

// Time includes the span still running, if any.
func (o *Overhead) Time() time.Duration {
	if o.running {
		return o.total + time.Since(o.since)
	}
	return o.total
}

// Spans counts Resume calls that started a new span since the last Reset.
func (o *Overhead) Spans() int {
	return o.spans
}

// Mean is the average span, or zero before the first one.
func (o *Overhead) Mean() time.Duration {
	if o.spans == 0 {
		return 0
	}
	return o.Time() / time.Duration(o.spans)
}
