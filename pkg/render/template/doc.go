// Package template defines the renderer-agnostic template seam used by the HTML
// renderer and theme packages. The gotemplate subpackage provides the default
// pongo2-backed implementation.
package template
