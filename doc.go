// Package omex reads and writes COMBINE Archives (OMEX files).
//
// A COMBINE Archive is a ZIP container bundling computational-biology
// models and related files together with a manifest.xml that indexes
// every entry by location, format, and a master flag.
//
// The package keeps mutations staged in memory: adds and removes are
// tracked against the originally loaded ZIP bytes and merged into a
// fresh container on Save. The manifest is the single source of truth
// for which entries exist; archived bytes are treated as opaque.
package omex
