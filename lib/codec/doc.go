// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec defines the payload codec contract for opaque tokens
// and provides the two standard implementations.
//
// A Codec turns a caller value into bytes and back. The token layer
// composes a Codec with the sealing layer without ever inspecting the
// value itself; which codec a token uses is fixed at the call site,
// never sniffed from the payload bytes.
//
//   - CBOR() is the default: fxamacker/cbor configured with Core
//     Deterministic Encoding (RFC 8949 §4.2) — sorted map keys,
//     smallest integer encoding, no indefinite-length items. Same
//     logical data always produces identical payload bytes.
//   - JSON() exists for callers whose value types already carry json
//     struct tags or who need payloads inspectable with standard
//     tooling once unsealed.
//
// Both implementations are stateless and safe for concurrent use.
//
// # Struct Tag Rules
//
// Types sealed only through the CBOR codec use `cbor` struct tags.
// Types that also pass through JSON surfaces use `json` tags —
// fxamacker/cbor reads `json` tags as fallback when `cbor` tags are
// absent, so a single `json` tag controls field naming and omitempty
// for both formats. Never put both tags on one field.
package codec
