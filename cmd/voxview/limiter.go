package main

import "time"

// spinWindow is how long before the deadline the limiter stops sleeping and
// spins, since Sleep overshoots by more than a frame at high caps.
const spinWindow = 200 * time.Microsecond

// frameLimiter paces the loop to a fixed frame rate.
type frameLimiter struct {
	target time.Duration
	next   time.Time
	now    func() time.Time
	sleep  func(time.Duration)
}

// newFrameLimiter returns nil for fps <= 0; a nil limiter never waits.
func newFrameLimiter(fps int) *frameLimiter {
	if fps <= 0 {
		return nil
	}
	return &frameLimiter{
		target: time.Second / time.Duration(fps),
		now:    time.Now,
		sleep:  time.Sleep,
	}
}

// Wait blocks until the next frame is due.
func (f *frameLimiter) Wait() {
	if f == nil {
		return
	}
	if f.next.IsZero() {
		f.next = f.now().Add(f.target)
	} else {
		f.next = f.next.Add(f.target)
	}

	for {
		remaining := f.next.Sub(f.now())
		if remaining <= 0 {
			break
		}
		if remaining > spinWindow {
			f.sleep(remaining - spinWindow)
		}
	}

	// resync after a hitch instead of racing to catch up
	if late := f.now().Sub(f.next); late > f.target {
		f.next = f.now().Add(f.target)
	}
}
