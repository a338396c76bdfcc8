// Package cli implements the interactive HaulBay marketplace client.
//
// The App type wires the REST API client, the SQLite profile store, the
// three identity providers (dealer, individual user, admin), their access
// guards and the saved-listing engine, then drives them from a small REPL.
//
// Identity resolution runs once at startup, before the first prompt, so
// guarded commands never redirect while a domain is still pending. A login
// discovered to be a dealer account is handed to the dealer domain and the
// application state is reloaded, mirroring how the identity providers
// expect a full restart after cross-domain handoff.
//
// Saved listings work in both identity states: signed-in visitors operate
// on the server collection, anonymous visitors on device-local flags in the
// profile database.
package cli
