// Package memory provides in-memory implementations of the driven ports.
// They back the service and CLI test suites.
package memory
