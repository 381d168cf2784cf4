// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package token encodes structured caller values into opaque tokens
// and back: byte strings that the holder can neither read nor alter
// without detection, under a symmetric key the issuer never shares.
//
// A token is a sealed frame (lib/sealbox) whose payload is the codec
// serialization (lib/codec) of the caller's value. Encode serializes
// then seals; Decode opens then deserializes. The sealing layer never
// learns the value's shape and this layer never touches cryptographic
// internals.
//
// The default payload codec is deterministic CBOR. Callers with other
// needs construct a Tokenizer around any codec.Codec:
//
//	type cursor struct {
//		LastID int64  `cbor:"last_id"`
//		SortBy string `cbor:"sort_by"`
//	}
//
//	text, err := token.EncodeString(key, cursor{LastID: 1033, SortBy: "name"})
//	// → "pXhJc0..." — opaque, URL-safe, tamper-evident
//
//	var c cursor
//	err = token.DecodeString(key, text, &c)
//
// Decode failures are ordinary errors, never panics: a forged,
// truncated, or wrong-key token returns ErrInvalidToken, and the
// caller learns nothing about which of those it was. A token that
// authenticates but no longer matches the expected payload shape
// (schema skew between issuer and consumer) returns ErrDecodePayload —
// reachable only with the real key, so the distinction leaks nothing
// to an attacker.
//
// All operations are stateless, single-shot, and safe for concurrent
// use with caller-owned buffers.
package token
