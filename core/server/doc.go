// Package server holds the HTTP server configuration.
//
// The serve command builds the Fiber app from this Config: listen port, the
// API key checked by the auth middleware and the graceful shutdown bound.
package server
