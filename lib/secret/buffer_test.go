// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package secret

import (
	"testing"
)

func TestNew(t *testing.T) {
	buffer, err := New(32)
	if err != nil {
		t.Fatalf("New(32) error: %v", err)
	}
	defer buffer.Close()

	if buffer.Len() != 32 {
		t.Errorf("Len() = %d, want 32", buffer.Len())
	}

	// Fresh buffer should be all zeros.
	for i, b := range buffer.Bytes() {
		if b != 0 {
			t.Errorf("byte %d = %d, want 0", i, b)
		}
	}
}

func TestNew_InvalidSize(t *testing.T) {
	if _, err := New(0); err == nil {
		t.Error("New(0) should return error")
	}
	if _, err := New(-1); err == nil {
		t.Error("New(-1) should return error")
	}
}

func TestNewFromBytes(t *testing.T) {
	source := []byte("sealing-key-material")
	original := string(source)

	buffer, err := NewFromBytes(source)
	if err != nil {
		t.Fatalf("NewFromBytes() error: %v", err)
	}
	defer buffer.Close()

	if buffer.String() != original {
		t.Errorf("String() = %q, want %q", buffer.String(), original)
	}

	// The source slice must be zeroed so the heap copy is gone.
	for i, b := range source {
		if b != 0 {
			t.Errorf("source byte %d = %d, want 0 after NewFromBytes", i, b)
		}
	}
}

func TestNewFromBytes_Empty(t *testing.T) {
	if _, err := NewFromBytes(nil); err == nil {
		t.Error("NewFromBytes(nil) should return error")
	}
	if _, err := NewFromBytes([]byte{}); err == nil {
		t.Error("NewFromBytes(empty) should return error")
	}
}

func TestBuffer_Equal(t *testing.T) {
	buffer, err := NewFromBytes([]byte("0123456789abcdef0123456789abcdef"))
	if err != nil {
		t.Fatalf("NewFromBytes() error: %v", err)
	}
	defer buffer.Close()

	if !buffer.Equal([]byte("0123456789abcdef0123456789abcdef")) {
		t.Error("Equal() = false for identical contents")
	}
	if buffer.Equal([]byte("0123456789abcdef0123456789abcdeX")) {
		t.Error("Equal() = true for differing contents")
	}
	if buffer.Equal([]byte("0123")) {
		t.Error("Equal() = true for shorter input")
	}
}

func TestBuffer_CloseIdempotent(t *testing.T) {
	buffer, err := New(16)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	if err := buffer.Close(); err != nil {
		t.Errorf("first Close() error: %v", err)
	}
	if err := buffer.Close(); err != nil {
		t.Errorf("second Close() error: %v", err)
	}
}

func TestBuffer_UseAfterClosePanics(t *testing.T) {
	buffer, err := New(16)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	buffer.Close()

	defer func() {
		if recover() == nil {
			t.Error("Bytes() after Close should panic")
		}
	}()
	buffer.Bytes()
}

func TestZero(t *testing.T) {
	data := []byte{1, 2, 3, 4, 5}
	Zero(data)
	for i, b := range data {
		if b != 0 {
			t.Errorf("byte %d = %d, want 0", i, b)
		}
	}
}
