// Package middleware contains the HTTP middleware of the RPC endpoint: trace
// IDs, caller resolution from bearer tokens and request logging.
package middleware
