// Package server is the HTTP front end for card rendering: one-shot
// render and validate endpoints, interactive sessions whose controls are
// activated by key, the designer state and a proxy to the workflow
// service.
package server
