// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package token

import (
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/bureau-foundation/opaque/lib/codec"
	"github.com/bureau-foundation/opaque/lib/sealbox"
)

// Overhead is the fixed size difference between a token and its
// serialized payload, re-exported from the sealing layer so token
// callers need only this package to size buffers.
const Overhead = sealbox.Overhead

var (
	// ErrInvalidToken is returned by Decode and DecodeString for any
	// token that cannot be trusted: tampered, truncated, wrong key, or
	// not a token at all. The causes are deliberately
	// indistinguishable.
	ErrInvalidToken = errors.New("token: cannot authenticate token")

	// ErrEncodePayload is returned by Encode when the codec cannot
	// represent the value.
	ErrEncodePayload = errors.New("token: payload cannot be encoded")

	// ErrDecodePayload is returned by Decode when an authenticated
	// payload does not deserialize into the target value. Reachable
	// only after authentication succeeds, so it signals schema skew
	// between issuer and consumer, not forgery.
	ErrDecodePayload = errors.New("token: authenticated payload does not decode")
)

// textEncoding is the wire text form for string tokens: unpadded
// base64url, safe in URLs, headers, and query parameters.
var textEncoding = base64.RawURLEncoding

// Tokenizer binds a payload codec to the sealing layer. The zero
// value is not usable; construct with New. A Tokenizer is stateless
// and safe for concurrent use.
type Tokenizer struct {
	payloadCodec codec.Codec
}

// New returns a Tokenizer using the given payload codec. The codec
// choice is part of the token format: tokens must be decoded with the
// same codec they were encoded with.
func New(payloadCodec codec.Codec) *Tokenizer {
	return &Tokenizer{payloadCodec: payloadCodec}
}

// Encode serializes value and seals it into dst, returning the token
// length: serialized payload size plus Overhead. dst must be large
// enough for that; since the serialized size is not knowable before
// encoding, buffer-managing callers typically over-provision or use
// EncodeBytes.
//
// Returns ErrEncodePayload when the codec cannot represent value;
// sealbox.ErrKeySize and sealbox.ErrBufferTooSmall propagate
// unchanged.
func (t *Tokenizer) Encode(key []byte, value any, dst []byte) (int, error) {
	payload, err := t.payloadCodec.Marshal(value)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrEncodePayload, err)
	}
	return sealbox.Seal(key, payload, dst)
}

// EncodeBytes is the allocating form of Encode.
func (t *Tokenizer) EncodeBytes(key []byte, value any) ([]byte, error) {
	payload, err := t.payloadCodec.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncodePayload, err)
	}
	return sealbox.SealBytes(key, payload)
}

// Decode authenticates the token and deserializes its payload into
// value (a pointer). Untrusted input is the expected case: any token
// that fails authentication — or is too short to be a token — returns
// ErrInvalidToken and leaves value untouched.
//
// A token that authenticates but whose payload does not deserialize
// returns ErrDecodePayload. sealbox.ErrKeySize propagates unchanged.
func (t *Tokenizer) Decode(key, tokenBytes []byte, value any) error {
	if len(tokenBytes) < sealbox.Overhead {
		return ErrInvalidToken
	}

	payload := make([]byte, len(tokenBytes)-sealbox.Overhead)
	n, err := sealbox.Open(key, tokenBytes, payload)
	if err != nil {
		if errors.Is(err, sealbox.ErrKeySize) {
			return err
		}
		return ErrInvalidToken
	}

	if err := t.payloadCodec.Unmarshal(payload[:n], value); err != nil {
		return fmt.Errorf("%w: %w", ErrDecodePayload, err)
	}
	return nil
}

// EncodeString returns the token as unpadded base64url text, the form
// to embed in URLs and API responses (pagination cursors, continuation
// tokens).
func (t *Tokenizer) EncodeString(key []byte, value any) (string, error) {
	tokenBytes, err := t.EncodeBytes(key, value)
	if err != nil {
		return "", err
	}
	return textEncoding.EncodeToString(tokenBytes), nil
}

// DecodeString decodes a text token produced by EncodeString.
//
// An empty string is a successful no-op that leaves value unmodified:
// "no cursor" means the first page, not an error. Any non-empty string
// that is not valid base64url, or whose frame fails authentication,
// returns ErrInvalidToken.
func (t *Tokenizer) DecodeString(key []byte, tokenText string, value any) error {
	if tokenText == "" {
		return nil
	}

	tokenBytes, err := textEncoding.DecodeString(tokenText)
	if err != nil {
		return ErrInvalidToken
	}
	return t.Decode(key, tokenBytes, value)
}

// defaultTokenizer serves the package-level functions: deterministic
// CBOR, the standard payload format for opaque tokens.
var defaultTokenizer = New(codec.CBOR())

// Encode serializes value with the default CBOR codec and seals it
// into dst. See Tokenizer.Encode.
func Encode(key []byte, value any, dst []byte) (int, error) {
	return defaultTokenizer.Encode(key, value, dst)
}

// EncodeBytes is the allocating form of Encode with the default codec.
func EncodeBytes(key []byte, value any) ([]byte, error) {
	return defaultTokenizer.EncodeBytes(key, value)
}

// Decode authenticates tokenBytes and deserializes the payload with
// the default CBOR codec. See Tokenizer.Decode.
func Decode(key, tokenBytes []byte, value any) error {
	return defaultTokenizer.Decode(key, tokenBytes, value)
}

// EncodeString returns a base64url text token with the default codec.
func EncodeString(key []byte, value any) (string, error) {
	return defaultTokenizer.EncodeString(key, value)
}

// DecodeString decodes a text token with the default codec. An empty
// string is a successful no-op.
func DecodeString(key []byte, tokenText string, value any) error {
	return defaultTokenizer.DecodeString(key, tokenText, value)
}
