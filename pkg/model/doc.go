// Package model defines the typed form model consumed by renderers. Builders
// (see pkg/openapi) produce FormModel values; decorators such as the widget
// registry enrich them before rendering.
//
// Schema extensions under the `x-formgen` namespace flow into Field metadata,
// while the curated UIHints map surfaces renderer-facing directives:
// `widget` and `field` select themed renderers for the widget and field
// extension roles, `placeholder`, `helpText`, `cssClass` and `hideLabel`
// adjust presentation, and `disabled`/`readonly` make controls inert.
package model
