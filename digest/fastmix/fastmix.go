// Package fastmix implements the FastMix block digest, a 64-bit ARX
// construction tuned for rapid repeated evaluation during nonce searches.
// It is a toy construction: it shares the output size of SHA-256 but makes
// no cryptographic strength claims.
package fastmix

import (
	"encoding/binary"
	"math/bits"

	fasthex "github.com/tmthrgd/go-hex"
)

// BlockSize The block size of the hash algorithm in bytes.
const BlockSize = 64

// Size The size of a FastMix digest in bytes.
const Size = 32

// Mode selects the number of mixing rounds applied per block.
type Mode int

const (
	// Fast Minimum rounds, the mining hot path.
	Fast = Mode(iota)
	// Standard Balanced for general use.
	Standard
	// Secure More rounds for verification paths.
	Secure
)

func (m Mode) Rounds() int {
	switch m {
	case Fast:
		return 2
	case Secure:
		return 4
	default:
		return 3
	}
}

func (m Mode) String() string {
	switch m {
	case Fast:
		return "fast"
	case Secure:
		return "secure"
	default:
		return "standard"
	}
}

// Initialization values, derived from the fractional parts of sqrt(2) and
// sqrt(3).
var iv = [4]uint64{
	0x6a09e667f3bcc908, 0xbb67ae8584caa73b,
	0x3c6ef372fe94f82b, 0xa54ff53a5f1d36f1,
}

type Digest struct {
	s      [4]uint64       // current state words
	x      [BlockSize]byte // buffer for data not yet compressed
	nx     int             // number of bytes in buffer
	rounds int
}

func New(mode Mode) *Digest {
	d := &Digest{rounds: mode.Rounds()}
	d.Reset()
	return d
}

// Reset returns the state to the initial constants and empties the buffer.
// The round count is kept.
func (d *Digest) Reset() {
	d.s = iv
	d.nx = 0
}

func (d *Digest) Size() int { return Size }

func (d *Digest) BlockSize() int { return BlockSize }

// mix is the two-word diffusion primitive, a rotate-xor ladder with shift
// distances 13/17/21/29.
func mix(x, y uint64) (uint64, uint64) {
	x = bits.RotateLeft64(x, -13) ^ y
	y = bits.RotateLeft64(y, 17) ^ x
	x = bits.RotateLeft64(x, -21) ^ y
	y = bits.RotateLeft64(y, 29) ^ x
	return x, y
}

// block ingests one or more full 64-byte blocks into the state.
func (d *Digest) block(p []byte) {
	s0, s1, s2, s3 := d.s[0], d.s[1], d.s[2], d.s[3]

	for len(p) >= BlockSize {
		// fold the eight big endian words pairwise into the state
		s0 ^= binary.BigEndian.Uint64(p[0:]) ^ binary.BigEndian.Uint64(p[32:])
		s1 ^= binary.BigEndian.Uint64(p[8:]) ^ binary.BigEndian.Uint64(p[40:])
		s2 ^= binary.BigEndian.Uint64(p[16:]) ^ binary.BigEndian.Uint64(p[48:])
		s3 ^= binary.BigEndian.Uint64(p[24:]) ^ binary.BigEndian.Uint64(p[56:])

		for r := 0; r < d.rounds; r++ {
			s0, s1 = mix(s0, s1)
			s2, s3 = mix(s2, s3)
			s0, s2 = mix(s0, s2)
			s1, s3 = mix(s1, s3)
		}

		p = p[BlockSize:]
	}

	d.s[0], d.s[1], d.s[2], d.s[3] = s0, s1, s2, s3
}

func (d *Digest) Write(p []byte) (nn int, err error) {
	nn = len(p)
	if d.nx > 0 {
		n := copy(d.x[d.nx:], p)
		d.nx += n
		if d.nx == BlockSize {
			d.block(d.x[:])
			d.nx = 0
		}
		p = p[n:]
	}
	if len(p) >= BlockSize {
		n := len(p) &^ (BlockSize - 1)
		d.block(p[:n])
		p = p[n:]
	}
	if len(p) > 0 {
		d.nx = copy(d.x[:], p)
	}
	return
}

// MixNonce folds a nonce directly into the state words, the mutate-in-place
// fast path for nonce searches. Unlike Sum this permanently advances the
// state; callers are expected to work on a fresh or copied engine per
// nonce.
func (d *Digest) MixNonce(nonce uint64) {
	d.s[0] ^= nonce
	d.s[1] ^= bits.RotateLeft64(nonce, -32)

	d.s[0], d.s[1] = mix(d.s[0], d.s[1])
	d.s[2], d.s[3] = mix(d.s[2], d.s[3])
}

// Sum appends the current digest to in. The finalization runs on a copy,
// the live state and buffer stay usable for further writes.
func (d *Digest) Sum(in []byte) []byte {
	d0 := *d
	sum := d0.checkSum()
	return append(in, sum[:]...)
}

// HexSum returns the current digest as a lowercase hex string, without
// disturbing the live state.
func (d *Digest) HexSum() string {
	d0 := *d
	sum := d0.checkSum()
	return fasthex.EncodeToString(sum[:])
}

func (d *Digest) checkSum() [Size]byte {
	// one terminal zero-padded block, ingested even when the buffer is
	// empty so aligned messages cannot alias their unpadded prefixes
	var tmp [BlockSize]byte
	copy(tmp[:], d.x[:d.nx])
	d.nx = 0
	d.block(tmp[:])

	d.s[0], d.s[2] = mix(d.s[0], d.s[2])
	d.s[1], d.s[3] = mix(d.s[1], d.s[3])

	var out [Size]byte
	for i, s := range d.s {
		binary.BigEndian.PutUint64(out[i*8:], s)
	}
	return out
}

// Sum returns the FastMix digest of data under the given mode.
func Sum(data []byte, mode Mode) [Size]byte {
	d := New(mode)
	_, _ = d.Write(data)
	return d.checkSum()
}

// HexSum returns the FastMix digest of data as a lowercase hex string.
func HexSum(data []byte, mode Mode) string {
	sum := Sum(data, mode)
	return fasthex.EncodeToString(sum[:])
}

// SumWithNonce hashes data with the nonce fast path: the message is
// ingested normally, the nonce is mixed straight into the state, and the
// digest finalized. A fresh engine is used per call.
func SumWithNonce(data []byte, nonce uint64, mode Mode) string {
	d := New(mode)
	_, _ = d.Write(data)
	d.MixNonce(nonce)
	return d.HexSum()
}

// SumKeyed returns a keyed digest, the key block ingested ahead of the
// message.
func SumKeyed(msg, key []byte, mode Mode) string {
	d := New(mode)
	_, _ = d.Write(key)
	_, _ = d.Write(msg)
	return d.HexSum()
}

// DeriveKey stretches password and salt by chaining the digest for the
// given number of iterations.
func DeriveKey(password, salt []byte, iterations int, mode Mode) string {
	d := New(mode)
	_, _ = d.Write(password)
	_, _ = d.Write(salt)
	sum := d.checkSum()

	for i := 1; i < iterations; i++ {
		d.Reset()
		_, _ = d.Write(sum[:])
		sum = d.checkSum()
	}
	return fasthex.EncodeToString(sum[:])
}
