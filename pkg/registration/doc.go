// Package registration holds the student registration form: its field
// definition, the explicit form state, a pure reducer over user actions and
// the Form controller that performs the reducer's effects.
//
// The reducer never touches a UI. Submit produces effects (focus a field,
// scroll to the top, schedule a banner dismissal) which Form hands to a
// FocusPort and a Scheduler. Dismissals carry the token of the submit that
// raised them, so a stale timer cannot clear a newer banner, and Close
// cancels whatever is still pending.
package registration
