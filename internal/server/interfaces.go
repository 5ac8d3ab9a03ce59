package server

// Server runs the API until the process is asked to stop.
type Server interface {
	// RunServer blocks until SIGTERM, SIGINT or SIGQUIT arrives and the
	// in-flight requests have drained.
	RunServer()

	// Shutdown stops accepting connections and waits for active requests.
	Shutdown()
}
