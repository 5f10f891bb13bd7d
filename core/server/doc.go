// Package server holds the HTTP server configuration.
//
// The HTTP API is optional; it is only started by the serve command. The
// Config struct defines the bind address, the API key that protects every
// route except the Swagger UI, and the graceful shutdown bound.
package server
