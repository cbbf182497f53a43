// Package errors provides structured error handling with error codes for breadsaver.
//
// Every failure surfaced to an HTTP client is an *Error whose Code selects the
// status via MapErrorCodeToHTTPStatus and whose Message becomes the "error"
// field of the JSON body:
//
//	err := errors.MissingFields("Missing required fields: email, password")
//	status := err.HTTPStatusCode() // 400
//
// Unexpected failures are wrapped with InternalWrap so the cause is kept for
// logging while clients only see "Internal server error".
package errors
