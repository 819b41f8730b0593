package server

// Server defines the lifecycle contract of the application server.
//
// Implementations block in [RunServer] until shutdown is requested and
// release resources in [Shutdown].
type Server interface {
	// RunServer starts serving requests and blocks until the server stops.
	// It returns an error when the server could not start or failed while
	// serving.
	RunServer() error

	// Shutdown gracefully stops the server and frees associated resources.
	Shutdown()
}
