// Package common contains small constants and helpers shared by the carpark
// client packages.
package common

// RequestIDHeaderName is the HTTP header carrying the per-request correlation
// id on outbound API calls.
const RequestIDHeaderName = "X-Request-ID"

// DefaultUserRole is the role assigned to new accounts when none is chosen.
const DefaultUserRole = "user"
