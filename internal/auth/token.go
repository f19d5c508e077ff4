// ABOUTME: Session token codec producing opaque base64 tokens from emails.
// ABOUTME: Decoding is best-effort and carries no integrity guarantee.

package auth

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrMalformedToken is returned when a token cannot be decoded.
var ErrMalformedToken = errors.New("malformed token")

// TokenCodec defines the interface for minting and decoding session tokens.
type TokenCodec interface {
	Generate(email string) string
	Decode(token string) (string, error)
}

// Codec implements TokenCodec using the legacy base64(email:millis) scheme.
// Tokens are unsigned and never expire; the registry is the sole source of
// validity.
type Codec struct {
	now func() time.Time
}

// NewCodec creates a codec using the wall clock.
func NewCodec() *Codec {
	return &Codec{now: time.Now}
}

// Generate mints a fresh token for the given email. Every call produces a
// new token because the issuance time is part of the payload.
func (c *Codec) Generate(email string) string {
	payload := email + ":" + strconv.FormatInt(c.now().UnixMilli(), 10)
	return base64.StdEncoding.EncodeToString([]byte(payload))
}

// Decode extracts the email from a token. The payload is split on the first
// ':'; if no separator is present the whole payload is returned, matching
// the behavior clients already depend on. Only a base64 failure yields
// ErrMalformedToken.
func (c *Codec) Decode(token string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedToken, err)
	}
	email, _, _ := strings.Cut(string(raw), ":")
	return email, nil
}
