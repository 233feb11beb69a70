// Package openapi loads OpenAPI 3 documents with kin-openapi and builds form
// models from their component schemas.
package openapi
