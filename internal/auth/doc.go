// ABOUTME: Package documentation for the auth handlers and token codec.
// ABOUTME: Describes the session token scheme and its known limitations.

// Package auth implements the authentication endpoints and the session
// token codec.
//
// Tokens are base64("email:epochMillis") with no signature and no expiry.
// The codec carries no integrity guarantee: any well-formed base64 string
// decodes to a "valid-looking" email, and validity is decided entirely by
// registry membership. This matches the wire format existing clients hold,
// so tokens issued before a restart still decode (though the registry they
// pointed at is gone).
//
// Login deliberately auto-provisions: a login that does not match stored
// credentials creates or overwrites the account instead of failing. This is
// demo-mode behavior and means a wrong-password attempt against an existing
// account silently replaces it.
package auth
