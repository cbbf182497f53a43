// Package ratelimit throttles the password endpoints per client IP with an
// in-process token bucket.
package ratelimit
