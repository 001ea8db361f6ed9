// Package card models declarative card documents: a root Card holding an
// ordered body of typed nodes (text, images, layout containers, inputs) and
// a set of actions.
//
// Documents arrive loosely typed (decoded JSON or YAML). Parsing is total:
// unknown node types become Unknown values, mistyped fields fall back to
// their documented defaults, and every node keeps its original attribute map
// so unrecognised attributes survive for forward compatibility.
package card
