package testsupport

import (
	"sort"
	"sync"
	"time"
)

// ManualScheduler is a registration.Scheduler driven by Advance instead of
// wall-clock time.
type ManualScheduler struct {
	mu      sync.Mutex
	now     time.Duration
	seq     int
	pending []*manualTask
}

type manualTask struct {
	at        time.Duration
	seq       int
	fn        func()
	cancelled bool
}

// NewManualScheduler returns a scheduler at time zero.
func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{}
}

// Schedule registers fn to run once the clock passes d from now.
func (s *ManualScheduler) Schedule(d time.Duration, fn func()) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	task := &manualTask{at: s.now + d, seq: s.seq, fn: fn}
	s.pending = append(s.pending, task)
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		task.cancelled = true
	}
}

// Advance moves the clock forward and runs every task that came due, in
// deadline order. Callbacks run without the scheduler lock held.
func (s *ManualScheduler) Advance(d time.Duration) {
	s.mu.Lock()
	s.now += d
	var due, rest []*manualTask
	for _, task := range s.pending {
		switch {
		case task.cancelled:
		case task.at <= s.now:
			due = append(due, task)
		default:
			rest = append(rest, task)
		}
	}
	s.pending = rest
	s.mu.Unlock()

	sort.Slice(due, func(i, j int) bool {
		if due[i].at == due[j].at {
			return due[i].seq < due[j].seq
		}
		return due[i].at < due[j].at
	})
	for _, task := range due {
		task.fn()
	}
}

// Pending returns the number of scheduled, uncancelled tasks.
func (s *ManualScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, task := range s.pending {
		if !task.cancelled {
			n++
		}
	}
	return n
}

// FocusRecorder is a registration.FocusPort that records requests.
type FocusRecorder struct {
	mu      sync.Mutex
	Focused []string
	Scrolls int
}

func (f *FocusRecorder) Focus(field string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Focused = append(f.Focused, field)
}

func (f *FocusRecorder) ScrollToTop() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Scrolls++
}
