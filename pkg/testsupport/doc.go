// Package testsupport holds helpers shared by the package tests: a manual
// scheduler, a recording focus port and a complete set of valid form values.
package testsupport
