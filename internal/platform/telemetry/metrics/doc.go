// Package metrics records operational metrics in Prometheus format.
//
// The gRPC interceptor records, per method:
//   - request count by status code
//   - request latency
//
// A scrape-time gauge reports how many events the store holds.
package metrics
