// Package testutil provides shared fixtures and fluent builders used
// by tests across the module. Production code must not import it.
package testutil
