// Package http implements the HTTP transport layer of the item custody
// server.
//
// It exposes route wiring, request handlers, and middleware used by the REST
// API. Cross-cutting concerns such as token authentication, request tracing,
// access logging, CORS and response compression are handled in this package
// before requests are delegated to the service layer. Every failure is
// answered with a JSON body of the form {"detail": "..."}.
package http
