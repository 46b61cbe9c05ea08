// Package cli provides the interactive climate tracker command-line client.
//
// It wires configuration, the HTTP API client and an interactive REPL. The
// prompt shows the logged-in user and whether the server is reachable.
//
// Key features:
//   - Register / Login / Logout
//   - calc: enter a month of usage, record it and print the full report
//   - preview: the same assessment without recording anything
//   - history, leaderboard, predict, export
//
// The REPL is started via App.Root(ctx), which blocks until the user exits.
// See App, StartOnlineStatusWatcher, and runREPL for details.
package cli
