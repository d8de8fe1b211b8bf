package server

// Server runs the shop's transports: the JSON API over HTTP and the gRPC
// health service.
type Server interface {
	// RunServer serves until the process receives a stop signal, then shuts
	// every transport down gracefully.
	RunServer()

	// Shutdown stops every transport. In-flight HTTP requests get a bounded
	// grace period.
	Shutdown()
}
