package registration

import (
	"time"

	"github.com/goliatone/go-regform/pkg/model"
)

const (
	ErrorDismissDelay   = 5 * time.Second
	SuccessDismissDelay = 6 * time.Second
)

// Action is a user interaction the reducer understands.
type Action interface {
	action()
}

// SetField replaces a field value, subject to the field's filter.
type SetField struct {
	Name  string
	Value string
}

// ToggleSection flips the expansion flag of one section.
type ToggleSection struct {
	Section model.SectionID
}

// MarkTouched records that a field lost focus.
type MarkTouched struct {
	Name string
}

// Submit checks required fields and raises the success or error banner.
type Submit struct{}

// Reset clears every value and touched flag.
type Reset struct{}

// DismissBanner clears the banner raised by the submit carrying Token.
type DismissBanner struct {
	Token uint64
}

func (SetField) action()      {}
func (ToggleSection) action() {}
func (MarkTouched) action()   {}
func (Submit) action()        {}
func (Reset) action()         {}
func (DismissBanner) action() {}

// Effect is a side effect requested by the reducer. The Form controller
// performs them; the reducer itself stays pure.
type Effect interface {
	effect()
}

// FocusField asks the UI to scroll to and focus a field.
type FocusField struct {
	Name string
}

// ScrollToTop asks the UI to bring the banner into view.
type ScrollToTop struct{}

// ScheduleDismiss asks for DismissBanner{Token} to be dispatched After the
// given delay. A newer ScheduleDismiss supersedes older ones.
type ScheduleDismiss struct {
	After time.Duration
	Token uint64
}

// TraceSubmission reports a successful submission record.
type TraceSubmission struct {
	Record Record
}

// InputRejected reports a change dropped by a filter.
type InputRejected struct {
	Name  string
	Value string
	Err   error
}

func (FocusField) effect()      {}
func (ScrollToTop) effect()     {}
func (ScheduleDismiss) effect() {}
func (TraceSubmission) effect() {}
func (InputRejected) effect()   {}

// Record is the flat submission payload keyed by field name.
type Record map[string]string
