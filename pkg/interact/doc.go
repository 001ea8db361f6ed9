// Package interact drives a card instance from the terminal: it prints a
// text outline of the current presentation and offers the card's controls
// as a menu.
package interact
