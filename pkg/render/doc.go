// Package render turns parsed cards into HTML fragments.
//
// Dispatch resolves every node in three steps: an override registered for
// the node's type tag wins, then the built-in renderer for the tag, then a
// visible "[Unsupported node: <tag>]" placeholder. Rendering never fails on
// document content; malformed or unknown input degrades to placeholders.
//
// An Instance owns the interactive state of one mounted card: element
// visibility toggled by Action.ToggleVisibility and nested cards expanded by
// Action.ShowCard. Controls are addressed by the path of the action inside
// the card, for example "actions.0" or "body.2.actions.1", and driven with
// Instance.Activate.
package render
