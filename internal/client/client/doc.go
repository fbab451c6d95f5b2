// Package client contains the API gateway of the carpark dashboard.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic API contract (see the Client interface) with one
//     method per server endpoint and a generic Do chokepoint.
//  2. A JSON-over-HTTP implementation (see HTTPClient) that keeps the session
//     cookie in a jar, tags each request with an X-Request-ID and maps non-2xx
//     responses to *APIError.
//
// # Error Handling
//
// A failed response is returned as *APIError carrying the status, the
// server's "error" text (or "Request failed") and the parsed payload.
// errors.Is(err, ErrUnauthorized) holds for 401. Network failures wrap
// ErrUnavailable. Endpoints that must return a snapshot report
// ErrMalformedResponse when the body has none.
//
// Concurrency & Contexts
//
// HTTPClient is safe for concurrent use. No retries and no client-side
// timeouts are applied; the caller's context is the only cancellation.
package client
