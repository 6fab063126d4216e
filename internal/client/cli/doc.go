// Package cli provides the interactive GophDrive command-line client.
//
// It wires configuration and the gRPC client into a REPL that keeps track
// of the current folder, much like a shell. After login the session starts
// in the user's home folder.
//
// Key features:
//   - Register / Login / Logout
//   - Navigate folders (ls, cd) and manage them (mkdir, rename, rmdir)
//   - Upload, download and delete files (put, get, rm)
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli
