// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Opaque-token seals and opens opaque tokens from the command line.
// It is an operator tool for minting test tokens, inspecting tokens
// in bug reports, and generating sealing keys — the library under
// lib/token is the production surface.
//
// The payload travels as JSON on stdin/stdout (human-readable at the
// edges); inside the token it is the library's default deterministic
// CBOR.
//
// Exit codes:
//
//	0  success
//	1  operational failure (token does not authenticate, bad key file)
//	2  usage error
//
// Examples:
//
//	opaque-token keygen > key.b64
//	echo '{"Foo":"Bar"}' | opaque-token seal --key key.b64
//	echo "$TOKEN" | opaque-token open --key key.b64
package main
