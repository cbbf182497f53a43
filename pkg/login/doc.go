// Package login implements password login for bakery owners, plus the
// session introspection and logout endpoints for issued tokens.
//
// Passwords go through a PasswordHasher. The default PlaintextHasher keeps
// the stored format existing accounts were created with and is insecure;
// BcryptHasher is available behind PASSWORD_HASHER=bcrypt.
package login
