// Package server owns the listeners of the shop: the HTTP API and the
// optional gRPC health endpoint. Both stop on SIGTERM, SIGINT or SIGQUIT.
package server
