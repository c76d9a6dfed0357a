// Package app contains the core application logic. It owns the process-wide
// blotter catalog, registers the compiled-in blotter modules into it, and
// drives a run: load a run file, open the named blotter, submit orders, fill
// them and report the outcome. It is decoupled from any specific entrypoint
// like a CLI or server.
package app
