// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package sealbox

import (
	"bytes"
	"crypto/rand"
	"errors"
	"testing"
)

func testKey(t *testing.T) []byte {
	t.Helper()
	key := make([]byte, KeySize)
	if _, err := rand.Read(key); err != nil {
		t.Fatalf("generating test key: %v", err)
	}
	return key
}

func TestSealOpen_Roundtrip(t *testing.T) {
	key := testKey(t)
	plaintext := []byte("opaque payload bytes")

	frame := make([]byte, len(plaintext)+Overhead)
	written, err := Seal(key, plaintext, frame)
	if err != nil {
		t.Fatalf("Seal() error: %v", err)
	}
	if written != len(plaintext)+Overhead {
		t.Errorf("Seal() wrote %d bytes, want %d", written, len(plaintext)+Overhead)
	}

	recovered := make([]byte, written-Overhead)
	recoveredLen, err := Open(key, frame[:written], recovered)
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	if recoveredLen != len(plaintext) {
		t.Errorf("Open() returned %d bytes, want %d", recoveredLen, len(plaintext))
	}
	if !bytes.Equal(recovered[:recoveredLen], plaintext) {
		t.Errorf("Open() = %q, want %q", recovered[:recoveredLen], plaintext)
	}
}

func TestSealOpen_EmptyPlaintext(t *testing.T) {
	key := testKey(t)

	frame, err := SealBytes(key, nil)
	if err != nil {
		t.Fatalf("SealBytes(nil) error: %v", err)
	}
	if len(frame) != Overhead {
		t.Errorf("frame length = %d, want %d", len(frame), Overhead)
	}

	recovered, err := OpenBytes(key, frame)
	if err != nil {
		t.Fatalf("OpenBytes() error: %v", err)
	}
	if len(recovered) != 0 {
		t.Errorf("OpenBytes() = %q, want empty", recovered)
	}
}

func TestSeal_FrameLayout(t *testing.T) {
	key := testKey(t)
	plaintext := []byte("layout check")

	frame, err := SealBytes(key, plaintext)
	if err != nil {
		t.Fatalf("SealBytes() error: %v", err)
	}

	if len(frame) != len(plaintext)+Overhead {
		t.Fatalf("frame length = %d, want %d", len(frame), len(plaintext)+Overhead)
	}
	if frame[NonceSize] != Version {
		t.Errorf("version byte = %#x, want %#x", frame[NonceSize], Version)
	}
	// Ciphertext must not equal plaintext.
	if bytes.Equal(frame[headerSize:headerSize+len(plaintext)], plaintext) {
		t.Error("ciphertext region equals plaintext")
	}
}

func TestSeal_NonceUniqueness(t *testing.T) {
	key := testKey(t)
	plaintext := []byte("same payload every time")

	first, err := SealBytes(key, plaintext)
	if err != nil {
		t.Fatalf("first SealBytes() error: %v", err)
	}
	second, err := SealBytes(key, plaintext)
	if err != nil {
		t.Fatalf("second SealBytes() error: %v", err)
	}

	if bytes.Equal(first, second) {
		t.Error("two seals of identical plaintext produced identical frames")
	}
	if bytes.Equal(first[:NonceSize], second[:NonceSize]) {
		t.Error("two seals produced identical nonces")
	}

	// Both frames must independently round-trip.
	for i, frame := range [][]byte{first, second} {
		recovered, err := OpenBytes(key, frame)
		if err != nil {
			t.Fatalf("OpenBytes(frame %d) error: %v", i, err)
		}
		if !bytes.Equal(recovered, plaintext) {
			t.Errorf("OpenBytes(frame %d) = %q, want %q", i, recovered, plaintext)
		}
	}
}

func TestSeal_KeySize(t *testing.T) {
	plaintext := []byte("data")
	dst := make([]byte, len(plaintext)+Overhead)

	for _, size := range []int{0, 16, 31, 33, 64} {
		if _, err := Seal(make([]byte, size), plaintext, dst); !errors.Is(err, ErrKeySize) {
			t.Errorf("Seal() with %d-byte key: error = %v, want ErrKeySize", size, err)
		}
	}
}

func TestSeal_BufferTooSmall(t *testing.T) {
	key := testKey(t)
	plaintext := []byte("does not fit")

	dst := make([]byte, len(plaintext)+Overhead-1)
	// Fill with a sentinel pattern to detect partial writes.
	for i := range dst {
		dst[i] = 0xAA
	}

	if _, err := Seal(key, plaintext, dst); !errors.Is(err, ErrBufferTooSmall) {
		t.Fatalf("Seal() error = %v, want ErrBufferTooSmall", err)
	}
	for i, b := range dst {
		if b != 0xAA {
			t.Errorf("Seal() wrote to dst[%d] despite buffer-too-small error", i)
			break
		}
	}
}

func TestOpen_BufferTooSmall(t *testing.T) {
	key := testKey(t)
	frame, err := SealBytes(key, []byte("sixteen byte pay"))
	if err != nil {
		t.Fatalf("SealBytes() error: %v", err)
	}

	dst := make([]byte, len(frame)-Overhead-1)
	if _, err := Open(key, frame, dst); !errors.Is(err, ErrBufferTooSmall) {
		t.Errorf("Open() error = %v, want ErrBufferTooSmall", err)
	}
}

func TestOpen_WrongKey(t *testing.T) {
	key := testKey(t)
	frame, err := SealBytes(key, []byte("secret"))
	if err != nil {
		t.Fatalf("SealBytes() error: %v", err)
	}

	wrongKey := testKey(t)
	if _, err := OpenBytes(wrongKey, frame); !errors.Is(err, ErrAuthentication) {
		t.Errorf("OpenBytes(wrong key) error = %v, want ErrAuthentication", err)
	}

	// An all-zero key of the correct length must also fail.
	zeroKey := make([]byte, KeySize)
	if _, err := OpenBytes(zeroKey, frame); !errors.Is(err, ErrAuthentication) {
		t.Errorf("OpenBytes(zero key) error = %v, want ErrAuthentication", err)
	}
}

func TestOpen_TamperDetection(t *testing.T) {
	key := testKey(t)
	frame, err := SealBytes(key, []byte("tamper target"))
	if err != nil {
		t.Fatalf("SealBytes() error: %v", err)
	}

	// Flipping any single bit anywhere in the frame — nonce, version,
	// ciphertext, or tag — must fail authentication.
	for position := range frame {
		tampered := make([]byte, len(frame))
		copy(tampered, frame)
		tampered[position] ^= 0x01

		if _, err := OpenBytes(key, tampered); !errors.Is(err, ErrAuthentication) {
			t.Errorf("OpenBytes() with bit flipped at byte %d: error = %v, want ErrAuthentication", position, err)
		}
	}
}

func TestOpen_TruncationRejected(t *testing.T) {
	key := testKey(t)
	frame, err := SealBytes(key, []byte("truncation target"))
	if err != nil {
		t.Fatalf("SealBytes() error: %v", err)
	}

	// Every truncation, from empty input up to one byte short of the
	// full frame, must fail — including lengths below Overhead.
	for length := 0; length < len(frame); length++ {
		dst := make([]byte, len(frame))
		if _, err := Open(key, frame[:length], dst); !errors.Is(err, ErrAuthentication) {
			t.Errorf("Open() of frame truncated to %d bytes: error = %v, want ErrAuthentication", length, err)
		}
	}
}

func TestOpen_ExtensionRejected(t *testing.T) {
	key := testKey(t)
	frame, err := SealBytes(key, []byte("extension target"))
	if err != nil {
		t.Fatalf("SealBytes() error: %v", err)
	}

	extended := append(append([]byte{}, frame...), 0x00)
	if _, err := OpenBytes(key, extended); !errors.Is(err, ErrAuthentication) {
		t.Errorf("OpenBytes(extended frame) error = %v, want ErrAuthentication", err)
	}
}

func TestOpen_KeySize(t *testing.T) {
	frame := make([]byte, Overhead+4)
	dst := make([]byte, 4)
	if _, err := Open(make([]byte, 16), frame, dst); !errors.Is(err, ErrKeySize) {
		t.Errorf("Open() with 16-byte key: error = %v, want ErrKeySize", err)
	}
}

func TestOverheadConstant(t *testing.T) {
	// The wire format promises exactly 29 bytes of overhead:
	// 12 nonce + 1 version + 16 tag. This is a public contract —
	// callers size buffers with it.
	if Overhead != 29 {
		t.Errorf("Overhead = %d, want 29", Overhead)
	}
	if NonceSize != 12 {
		t.Errorf("NonceSize = %d, want 12", NonceSize)
	}
	if TagSize != 16 {
		t.Errorf("TagSize = %d, want 16", TagSize)
	}
	if KeySize != 32 {
		t.Errorf("KeySize = %d, want 32", KeySize)
	}
}

func TestSeal_LargePlaintext(t *testing.T) {
	key := testKey(t)
	plaintext := make([]byte, 64*1024)
	for i := range plaintext {
		plaintext[i] = byte(i % 256)
	}

	frame, err := SealBytes(key, plaintext)
	if err != nil {
		t.Fatalf("SealBytes(large) error: %v", err)
	}
	if len(frame) != len(plaintext)+Overhead {
		t.Fatalf("frame length = %d, want %d", len(frame), len(plaintext)+Overhead)
	}

	recovered, err := OpenBytes(key, frame)
	if err != nil {
		t.Fatalf("OpenBytes(large) error: %v", err)
	}
	if !bytes.Equal(recovered, plaintext) {
		t.Error("large plaintext did not round-trip")
	}
}
