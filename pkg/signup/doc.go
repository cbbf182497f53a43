// Package signup registers password accounts. Each signup creates the user
// and the user's bakery in one request.
package signup
