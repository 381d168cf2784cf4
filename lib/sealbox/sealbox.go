// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package sealbox

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/chacha20poly1305"
)

const (
	// KeySize is the exact size in bytes of a sealing key.
	KeySize = chacha20poly1305.KeySize

	// NonceSize is the size in bytes of the random nonce at the start
	// of every sealed frame.
	NonceSize = chacha20poly1305.NonceSize

	// TagSize is the size in bytes of the authentication tag at the
	// end of every sealed frame.
	TagSize = chacha20poly1305.Overhead

	// Version is the frame format version byte. It sits between the
	// nonce and the ciphertext and is bound into the authentication
	// tag, so a frame sealed under a future version never authenticates
	// under this one.
	Version byte = 0x00

	// headerSize is the length of the authenticated frame header:
	// nonce followed by the version byte.
	headerSize = NonceSize + 1

	// Overhead is the fixed per-frame overhead: nonce + version + tag.
	// Callers size buffers with it: len(plaintext)+Overhead for Seal
	// output, len(frame)-Overhead for Open output.
	Overhead = headerSize + TagSize
)

var (
	// ErrKeySize is returned when the key is not exactly KeySize bytes.
	// Keys are never truncated or padded.
	ErrKeySize = errors.New("sealbox: key must be exactly 32 bytes")

	// ErrBufferTooSmall is returned when the caller-supplied output
	// buffer cannot hold the result. Nothing is written in that case.
	ErrBufferTooSmall = errors.New("sealbox: output buffer too small")

	// ErrAuthentication is returned by Open for any frame that cannot
	// be trusted: wrong key, flipped bits, truncation, or extension.
	// The causes are deliberately indistinguishable.
	ErrAuthentication = errors.New("sealbox: cannot authenticate sealed frame")
)

// Seal encrypts plaintext into dst as a sealed frame and returns the
// number of bytes written, always len(plaintext)+Overhead. The frame
// carries a fresh random nonce, so sealing identical plaintext twice
// under the same key produces different frames.
//
// dst must be at least len(plaintext)+Overhead bytes; dst and
// plaintext must not overlap. Returns ErrKeySize or ErrBufferTooSmall
// without writing anything. Neither key nor plaintext is retained
// after return.
func Seal(key, plaintext, dst []byte) (int, error) {
	if len(key) != KeySize {
		return 0, ErrKeySize
	}
	frameLen := len(plaintext) + Overhead
	if len(dst) < frameLen {
		return 0, fmt.Errorf("%w: sealing needs %d bytes, have %d", ErrBufferTooSmall, frameLen, len(dst))
	}

	// A fresh cipher instance per call: no shared handle, no hidden
	// key schedule reuse across goroutines.
	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return 0, ErrKeySize
	}

	header := dst[:headerSize]
	if _, err := io.ReadFull(rand.Reader, header[:NonceSize]); err != nil {
		return 0, fmt.Errorf("sealbox: generating random nonce: %w", err)
	}
	header[NonceSize] = Version

	// Seal appends ciphertext+tag in place after the header. The full
	// header (nonce and version byte) is the additional authenticated
	// data.
	aead.Seal(dst[headerSize:headerSize], header[:NonceSize], plaintext, header)
	return frameLen, nil
}

// Open authenticates frame and, on success, writes the recovered
// plaintext into dst and returns its length, always
// len(frame)-Overhead.
//
// Any frame that fails authentication — wrong key, any flipped bit in
// nonce, version, ciphertext, or tag, or a frame shorter than
// Overhead — returns ErrAuthentication with nothing written to dst.
// dst must be at least len(frame)-Overhead bytes, else
// ErrBufferTooSmall.
func Open(key, frame, dst []byte) (int, error) {
	if len(key) != KeySize {
		return 0, ErrKeySize
	}
	if len(frame) < Overhead {
		// Truncated below the minimum frame size. Surfaced exactly
		// like a forged tag: the caller learns only "untrusted".
		return 0, ErrAuthentication
	}
	plaintextLen := len(frame) - Overhead
	if len(dst) < plaintextLen {
		return 0, fmt.Errorf("%w: opening needs %d bytes, have %d", ErrBufferTooSmall, plaintextLen, len(dst))
	}

	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return 0, ErrKeySize
	}

	header := frame[:headerSize]
	if _, err := aead.Open(dst[:0], header[:NonceSize], frame[headerSize:], header); err != nil {
		return 0, ErrAuthentication
	}
	return plaintextLen, nil
}

// SealBytes is the allocating form of Seal for callers that do not
// manage their own buffers.
func SealBytes(key, plaintext []byte) ([]byte, error) {
	frame := make([]byte, len(plaintext)+Overhead)
	n, err := Seal(key, plaintext, frame)
	if err != nil {
		return nil, err
	}
	return frame[:n], nil
}

// OpenBytes is the allocating form of Open. The returned slice is
// freshly allocated and owned by the caller.
func OpenBytes(key, frame []byte) ([]byte, error) {
	if len(frame) < Overhead {
		return nil, ErrAuthentication
	}
	plaintext := make([]byte, len(frame)-Overhead)
	n, err := Open(key, frame, plaintext)
	if err != nil {
		return nil, err
	}
	return plaintext[:n], nil
}
