package server

import "errors"

var (
	errNoHTTPServer = errors.New("http server is not configured")
	errListening    = errors.New("cannot listen on the configured address")
)
