// Package model defines stable boundary types for tooling that consumes
// scan results.
//
// The composite text itself is the persisted artifact; these structs are a
// projection of what was found in it and are the only types intended for
// direct JSON serialization by consumers.
package model
