// Package config assembles the server and client configurations.
//
// The server configuration is layered; a later layer overrides the non-zero
// fields of the earlier ones:
//  0. built-in defaults
//  1. a .env file, then the process environment
//  2. command-line flags
//  3. the JSON file named by -c or CONFIG
//
// [GetStructuredConfig] validates the merged result. The client only reads
// defaults, the environment and its leading flags, see [GetClientConfig].
package config
