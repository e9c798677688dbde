// Package cli provides the interactive fileshare command-line client.
//
// It wires configuration, the session store, the API client and the feature
// services, and runs a REPL on top of them. A background watcher raises the
// session-expired gate when the local credential passes its expiry; a
// failed request classified as expiry raises it too.
//
// While the gate is up the REPL accepts nothing but the acknowledgement,
// which logs the user out and leads straight into the login prompt.
//
// The REPL is started via App.Shell(ctx), which blocks until the user exits.
// One-shot commands (App.Login, App.Upload, ...) are used by cmd/client.
package cli
