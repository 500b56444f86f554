// Package theming loads go-theme manifests from YAML and resolves them into
// renderer configuration for the HTML form.
package theming
