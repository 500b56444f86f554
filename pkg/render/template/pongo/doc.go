// Package pongo implements the template engine on github.com/flosch/pongo2.
package pongo
