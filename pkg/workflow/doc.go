// Package workflow is the client for the remote card workflow service:
// generating cards from prompts, continuing existing cards and reviewing
// workflow steps. Routes and request schemas come from a bundled OpenAPI
// document; every request is recorded in a bounded event log and in
// Prometheus collectors.
package workflow
