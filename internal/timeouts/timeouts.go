// Package timeouts provides centralized timeout constants for the application.
//
// Chat turns are bounded by the oracle round trip: one resolution may make
// up to two completion attempts, each capped by ORACLE_TIMEOUT (10s default),
// plus local catalog work measured in microseconds. The HTTP write timeout
// leaves headroom for both attempts; everything else is fast local I/O.
package timeouts

import "time"

// HTTP server timeouts
const (
	// HTTPRead is the server read timeout. Chat payloads are small JSON
	// bodies, so a short window is enough.
	HTTPRead = 10 * time.Second

	// HTTPWrite is the server write timeout. Must cover two oracle
	// attempts plus response serialization.
	HTTPWrite = 30 * time.Second

	// HTTPIdle is the idle timeout for keep-alive connections.
	HTTPIdle = 120 * time.Second
)

// Shutdown timeouts
const (
	// SentryFlush bounds the final event flush during shutdown.
	SentryFlush = 2 * time.Second
)
