// Package validation holds the keystroke filters applied to registration
// fields. Every filter is a pure predicate over the whole candidate value: a
// change that fails its filter is dropped and the previous value stays in
// place. Accepted input is never trimmed or normalised.
package validation
