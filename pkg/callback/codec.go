// Package callback encodes display values into transport callback tokens.
//
// Chat transports cap callback payloads (Telegram allows 64 bytes) and
// restrict their charset, so a gateway cannot put raw display values on a
// button. The engine only ever sees original display values; this codec is
// the single invertible bridge gateways share, replacing ad-hoc
// space-to-underscore rewriting that could not be decoded back.
package callback

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// MaxTokenLen is the Telegram callback_data limit in bytes.
const MaxTokenLen = 64

// Well-known prefixes used by the storefront dialogue.
const (
	PrefixValue    = "val"
	PrefixCategory = "cat"
	PrefixNav      = "nav"
)

var (
	ErrTokenTooLong  = errors.New("encoded token exceeds the transport limit")
	ErrBadToken      = errors.New("malformed callback token")
	ErrWrongPrefix   = errors.New("callback token has a different prefix")
	ErrEmptyArgument = errors.New("prefix and value must be non-empty")
)

// Encode builds "<prefix>:<escaped value>". Percent-escaping keeps the
// token ASCII-safe and strictly invertible. Fails when the result would
// not fit on a button.
func Encode(prefix, value string) (string, error) {
	if prefix == "" || value == "" {
		return "", ErrEmptyArgument
	}

	token := prefix + ":" + url.PathEscape(value)
	if len(token) > MaxTokenLen {
		return "", fmt.Errorf("%w: %d bytes", ErrTokenTooLong, len(token))
	}
	return token, nil
}

// Decode recovers the exact original value from a token produced by
// Encode with the same prefix.
func Decode(prefix, token string) (string, error) {
	rest, ok := strings.CutPrefix(token, prefix+":")
	if !ok {
		return "", ErrWrongPrefix
	}

	value, err := url.PathUnescape(rest)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrBadToken, err)
	}
	if value == "" {
		return "", ErrBadToken
	}
	return value, nil
}
