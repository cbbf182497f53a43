// Package externalprovider implements sign in with Google for bakery owners.
//
// GoogleProvider wraps golang.org/x/oauth2 for the authorization code
// exchange and reads the v2 userinfo document. ExternalProviderService
// decides, from the intent carried in the OAuth state, whether the callback
// logs an existing account in (linking the Google id on first use) or signs
// a new account up, and ensures the owner's bakery exists.
//
// The api subpackage exposes the two HTTP endpoints:
//
//	GET /api/auth/google            redirect to Google
//	GET /api/auth/callback/google   redirect to /auth/callback
package externalprovider
