// Package api exposes the services as a JSON RPC endpoint of named
// procedures ("place.list", "review.create", ...).
//
// Every call runs the same pipeline: the caller resolved by
// middleware.Identity is checked by the procedure's Gate, the raw input is
// decoded and validated into the procedure's typed input, the handler runs,
// and any failure is mapped to an RPC error envelope by the ErrorTranslator.
// Queries are served on GET with the input in the "input" query parameter;
// mutations on POST with the input as the request body.
package api
