// Package render defines the contracts shared by the registration form
// renderers: the Renderer interface, a name-keyed Registry, per-request
// RenderOptions and helpers for hidden inputs and error payloads.
package render
