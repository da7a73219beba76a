// Package gameid generates time-ordered identifiers for games and play
// transitions. Ids are UUIDv7 values encoded as 26-character lowercase
// base32 strings, so they sort chronologically and paste cleanly into logs.
package gameid

import (
	"github.com/google/uuid"
)

// Base32 alphabet used by TypeID (Crockford's base32)
const alphabet = "0123456789abcdefghjkmnpqrstvwxyz"

// New creates a new identifier from a fresh UUIDv7.
func New() string {
	return Encode(uuid.Must(uuid.NewV7()))
}

// Encode renders a UUID as a 26-character base32 string.
func Encode(id uuid.UUID) string {
	var data [16]byte = id
	result := make([]byte, 26)

	// Encode 128 bits as 26 five-bit groups, most significant first.
	for i := 0; i < 26; i++ {
		bitOffset := i * 5
		byteIndex := bitOffset / 8
		bitIndex := bitOffset % 8

		var value uint8
		if byteIndex < 16 {
			if bitIndex <= 3 {
				value = (data[byteIndex] >> (3 - bitIndex)) & 0x1f
			} else {
				value = (data[byteIndex] << (bitIndex - 3)) & 0x1f
				if byteIndex+1 < 16 {
					value |= data[byteIndex+1] >> (11 - bitIndex)
				}
			}
		}
		result[i] = alphabet[value]
	}
	return string(result)
}
