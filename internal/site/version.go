package site

import (
	"crypto/rand"
	"sync"
	"time"
)

// Build versions are ULID-shaped: 26 Crockford Base32 characters, a 48-bit
// millisecond timestamp followed by 80 bits of randomness. They sort by build
// time and are only used to bust stylesheet caches.

var (
	versionMu  sync.Mutex
	lastTS     uint64
	lastRandom [10]byte
)

const crockford = "0123456789ABCDEFGHJKMNPQRSTVWXYZ"

// NewVersion returns a fresh build version for now.
func NewVersion() string {
	return newVersionAt(time.Now())
}

func newVersionAt(now time.Time) string {
	versionMu.Lock()
	defer versionMu.Unlock()

	ts := uint64(now.UnixMilli())
	var b [16]byte
	b[0] = byte(ts >> 40)
	b[1] = byte(ts >> 32)
	b[2] = byte(ts >> 24)
	b[3] = byte(ts >> 16)
	b[4] = byte(ts >> 8)
	b[5] = byte(ts)

	if ts == lastTS {
		// Same millisecond: increment the previous randomness so versions stay monotonic.
		for i := len(lastRandom) - 1; i >= 0; i-- {
			lastRandom[i]++
			if lastRandom[i] != 0 {
				break
			}
		}
	} else {
		lastTS = ts
		rand.Read(lastRandom[:])
	}
	copy(b[6:], lastRandom[:])

	return encode(b)
}

// encode writes 128 bits as 26 Crockford Base32 characters, most significant first.
func encode(b [16]byte) string {
	var out [26]byte
	// 130 output bits; the top two are always zero.
	var acc uint32
	bits := 2
	j := 0
	for _, v := range b {
		acc = acc<<8 | uint32(v)
		bits += 8
		for bits >= 5 {
			bits -= 5
			out[j] = crockford[(acc>>uint(bits))&31]
			j++
		}
	}
	return string(out[:])
}
