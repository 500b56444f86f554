// Package catalog provides the option lists offered by the registration form:
// the static choices (gender, nationality, semester, campus) and the two lists
// that depend on the selected academic level, degree programs and college
// departments. The default catalog is embedded from data/catalog.yaml; callers
// can load an override with Load or LoadFile.
package catalog
