// Package client talks to the GophDrive server.
//
// GRPCClient manages the connection, sends the access token with every call
// and transparently refreshes it once when the server reports it expired.
// gRPC status codes are mapped to the sentinel errors in errors.go so the
// CLI can match them with errors.Is.
package client
