// Package server wires and runs the application's transport servers.
//
// It binds the HTTP and gRPC listeners at construction, serves until the
// caller's context is cancelled (usually by a termination signal) or a
// transport fails, and shuts every enabled transport down gracefully.
package server
