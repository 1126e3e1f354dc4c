// Package timeouts defines shared timeout constants used across eventline.
package timeouts

import "time"

// GRPCDial caps the wait for a client to see the server SERVING.
const GRPCDial = 2 * time.Second

// StoreOpen caps connecting to a networked store at startup.
const StoreOpen = 10 * time.Second

// StorePing caps readiness probes and scrape-time store queries.
const StorePing = 2 * time.Second

// ReadHeader limits how long an HTTP server waits for request headers.
const ReadHeader = 5 * time.Second

// Shutdown limits how long servers wait for in-flight requests during
// graceful shutdown.
const Shutdown = 5 * time.Second
