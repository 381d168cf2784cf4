// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"encoding/json"
)

// jsonCodec implements Codec over encoding/json.
type jsonCodec struct{}

func (jsonCodec) Marshal(value any) ([]byte, error) {
	return json.Marshal(value)
}

func (jsonCodec) Unmarshal(data []byte, value any) error {
	return json.Unmarshal(data, value)
}

// JSON returns the JSON codec. Larger payloads than CBOR and no
// deterministic-encoding guarantee, but the unsealed bytes are
// readable with standard tooling and existing json struct tags apply
// unchanged.
func JSON() Codec {
	return jsonCodec{}
}
