// Package template defines the template seam used to lay rendered card
// fragments into full pages. The pongo subpackage provides the default
// implementation.
package template
