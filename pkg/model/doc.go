// Package model defines the typed form model consumed by renderers. Types live
// in internal/model and are re-exported here so the registration definition and
// every renderer agree on one shape. A FormModel is an ordered list of
// collapsible sections; each Field names the control to draw (FieldType), the
// keystroke filter guarding it (InputKind) and, for choice fields, either a
// static option list or the field its options depend on (DependsOn).
package model
