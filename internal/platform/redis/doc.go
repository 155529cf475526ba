// Package redis provides the Redis-backed cache used for place rating
// summaries.
package redis
