// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package sealbox

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"

	"github.com/zeebo/blake3"
	"golang.org/x/crypto/hkdf"

	"github.com/bureau-foundation/opaque/lib/secret"
)

// deriveInfoPrefix is the HKDF info prefix for DeriveKey, providing
// domain separation from any other HKDF use of the same root material.
// Changing it invalidates every token sealed under a derived key.
const deriveInfoPrefix = "opaque.sealbox.derive.v0:"

// fingerprintDomain is the hash domain prefix for Fingerprint, so a
// fingerprint can never collide with any other BLAKE3 use of the key
// bytes.
var fingerprintDomain = []byte("opaque.sealbox.fingerprint.v0")

// NewKey generates a random sealing key in guarded memory (locked
// against swap, excluded from core dumps, zeroed on close). The caller
// must call Close on the returned buffer when the key is retired.
func NewKey() (*secret.Buffer, error) {
	key := make([]byte, KeySize)
	if _, err := io.ReadFull(rand.Reader, key); err != nil {
		return nil, fmt.Errorf("sealbox: generating key: %w", err)
	}
	// NewFromBytes copies into mmap-backed memory and zeros the heap
	// slice.
	return secret.NewFromBytes(key)
}

// DeriveKey derives a subkey from root for the given context string
// using HKDF-SHA256. Different contexts yield independent keys, so
// token namespaces (pagination cursors, email verification, API
// continuations) can share one root secret without cross-namespace
// token replay: a frame sealed under one derived key never
// authenticates under another.
//
// The root is borrowed (read via Bytes) and NOT closed. The returned
// buffer must be closed by the caller. The salt is nil: root material
// is expected to be uniformly random already, so HKDF's extract phase
// with a zero key is appropriate per RFC 5869.
func DeriveKey(root *secret.Buffer, context string) (*secret.Buffer, error) {
	if root.Len() != KeySize {
		return nil, ErrKeySize
	}
	if context == "" {
		return nil, fmt.Errorf("sealbox: derivation context must not be empty")
	}

	reader := hkdf.New(sha256.New, root.Bytes(), nil, []byte(deriveInfoPrefix+context))
	derived := make([]byte, KeySize)
	if _, err := io.ReadFull(reader, derived); err != nil {
		secret.Zero(derived)
		return nil, fmt.Errorf("sealbox: HKDF key derivation failed: %w", err)
	}
	return secret.NewFromBytes(derived)
}

// Fingerprint returns a short stable hex identifier for a key, safe
// for logs and key inventories. It is a domain-separated BLAKE3 hash
// truncated to 8 bytes — it identifies the key without revealing any
// key material and cannot be inverted.
func Fingerprint(key []byte) string {
	hasher := blake3.New()
	hasher.Write(fingerprintDomain)
	hasher.Write(key)
	sum := hasher.Sum(nil)
	return hex.EncodeToString(sum[:8])
}
