// Package interactive runs the registration form as a full-screen terminal
// program built on bubbletea. Sections collapse and expand in place, the
// progress bar follows every accepted keystroke, and the submit banner
// dismisses itself on the form's own timers.
package interactive
