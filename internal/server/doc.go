// Package server runs the HTTP transport of the movie favorites API.
//
// It owns the server lifecycle: startup, signal handling, and graceful
// shutdown that lets in-flight requests finish.
package server
