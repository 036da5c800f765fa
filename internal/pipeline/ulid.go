package pipeline

import (
	"crypto/rand"
	"encoding/binary"
	"sync"
	"time"
)

// Dependency-free ULID generator: 26 Crockford Base32 characters with a
// 48-bit millisecond timestamp prefix and 80 bits of randomness.

var (
	ulidMu  sync.Mutex
	lastTS  uint64
	lastSeq uint16
)

const crockford = "0123456789ABCDEFGHJKMNPQRSTVWXYZ"

// NewJobID returns a fresh ULID for job identification.
func NewJobID() string {
	return generateULID()
}

func generateULID() string {
	ulidMu.Lock()
	defer ulidMu.Unlock()

	ts := uint64(time.Now().UnixMilli())
	if ts == lastTS {
		lastSeq++
	} else {
		lastTS = ts
		lastSeq = 0
	}

	var b [16]byte
	// Timestamp in first 6 bytes (big-endian 48-bit).
	b[0] = byte(ts >> 40)
	b[1] = byte(ts >> 32)
	b[2] = byte(ts >> 24)
	b[3] = byte(ts >> 16)
	b[4] = byte(ts >> 8)
	b[5] = byte(ts)
	rand.Read(b[6:])
	// Embed sequence in bytes 6-7 to ensure uniqueness within the same ms.
	binary.BigEndian.PutUint16(b[6:8], lastSeq)

	return encodeULID(b)
}

// encodeULID packs 128 bits into 26 base32 characters. Two implicit zero
// pad bits bring the total to 130, a multiple of 5.
func encodeULID(b [16]byte) string {
	out := make([]byte, 0, 26)
	var acc uint32
	accBits := 2
	for _, by := range b {
		acc = acc<<8 | uint32(by)
		accBits += 8
		for accBits >= 5 {
			accBits -= 5
			out = append(out, crockford[(acc>>accBits)&31])
		}
	}
	return string(out)
}
