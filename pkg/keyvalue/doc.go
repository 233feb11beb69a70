// Package keyvalue implements the list editor behind string-map fields such as
// environment variables. The host owns the canonical map[string]string; the
// editor owns an ordered list of rows mirroring it. Every local edit derives a
// fresh map and hands it to the host, and every new map supplied by the host
// replaces the rows wholesale.
//
// Rows with a blank (or whitespace-only) key stay editable but never reach the
// derived map. Duplicate keys collapse, the last row wins.
package keyvalue
