// Package session stores per-session guidance history so repeat
// callers can retrieve earlier responses. The default store is an
// in-memory map with optional TTL eviction.
package session
