// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package codec

// Codec serializes caller values to bytes and back. Implementations
// must be stateless: the token layer calls Marshal and Unmarshal
// concurrently from multiple goroutines.
//
// Marshal must fail (not truncate or guess) when the value cannot be
// represented in the codec's format. Unmarshal must fail cleanly on
// bytes that do not decode into the target value — it is called on
// authenticated payloads only, so a failure means schema skew, not an
// attack, but it must still never panic.
type Codec interface {
	Marshal(value any) ([]byte, error)
	Unmarshal(data []byte, value any) error
}
