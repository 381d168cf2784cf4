// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package secret provides a memory-safe buffer for sealing keys and
// other sensitive byte strings.
//
// Buffer allocates memory outside the Go heap via mmap(MAP_ANONYMOUS),
// locks it into physical RAM via mlock (preventing swap), and marks it
// excluded from core dumps via madvise(MADV_DONTDUMP). On Close, the
// memory is zeroed, unlocked, and unmapped.
//
// Because the memory lives outside the Go heap, the garbage collector
// never copies or relocates it, so zeroing on Close actually destroys
// the only copy. Sealing keys should spend their whole lifetime in a
// Buffer: read them with ReadFromPath or generate them with
// sealbox.NewKey, pass Bytes() to the sealing call site, and Close
// when the key is no longer needed.
package secret
