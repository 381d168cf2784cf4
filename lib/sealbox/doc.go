// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package sealbox provides authenticated encryption of opaque byte
// payloads into self-contained sealed frames.
//
// A sealed frame has a fixed layout:
//
//	offset 0   nonce       12 bytes, random, unique per Seal call
//	offset 12  version      1 byte, currently 0x00
//	offset 13  ciphertext   N bytes (N = plaintext length)
//	offset 13+N tag         16 bytes, Poly1305 authentication tag
//
// Total frame length is always N + Overhead (29 bytes). The cipher is
// ChaCha20-Poly1305 with a 32-byte key. The nonce and version byte are
// bound into the tag as additional authenticated data, so tampering
// with any byte of the frame — header, ciphertext, or tag — fails
// authentication.
//
// The nonce is drawn fresh from crypto/rand on every Seal and is never
// a counter: the layer is stateless, and random 96-bit nonces keep key
// reuse within the construction's birthday bound for any realistic
// call volume. Do not replace this with deterministic nonces without
// also adding the state to guarantee uniqueness.
//
// Sealbox knows nothing about what the payload bytes mean. The token
// layer (lib/token) composes a payload codec with this package; other
// callers can seal raw bytes directly.
//
// All failures are ordinary error values. Too-short and tampered
// frames both surface as ErrAuthentication — a holder of a bad token
// learns only that the token is untrusted, not why.
package sealbox
