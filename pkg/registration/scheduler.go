package registration

import "time"

// Scheduler runs fn once after d. The returned cancel function stops the task
// if it has not run yet; calling it more than once is safe.
type Scheduler interface {
	Schedule(d time.Duration, fn func()) (cancel func())
}

// SchedulerFunc adapts a function to Scheduler.
type SchedulerFunc func(d time.Duration, fn func()) func()

// Schedule calls f.
func (f SchedulerFunc) Schedule(d time.Duration, fn func()) func() {
	return f(d, fn)
}

// TimerScheduler schedules tasks on runtime timers.
type TimerScheduler struct{}

// Schedule arms a time.AfterFunc timer.
func (TimerScheduler) Schedule(d time.Duration, fn func()) func() {
	timer := time.AfterFunc(d, fn)
	return func() { timer.Stop() }
}

// NopScheduler never runs anything. Request-scoped forms use it because they
// are discarded before a banner could be dismissed.
type NopScheduler struct{}

// Schedule discards fn.
func (NopScheduler) Schedule(time.Duration, func()) func() {
	return func() {}
}
