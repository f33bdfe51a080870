// Package sha256 implements the SHA-256 hash function from scratch as a
// streaming block digest. It is the StandardDigest variant of this module
// and produces output identical to the standard algorithm.
package sha256

import (
	"encoding/binary"

	fasthex "github.com/tmthrgd/go-hex"
)

// BlockSize The block size of the hash algorithm in bytes.
const BlockSize = 64

// Size The size of a SHA-256 digest in bytes.
const Size = 32

// Initialization values, first 32 bits of the fractional parts of the
// square roots of the first 8 primes.
var iv = [8]uint32{
	0x6a09e667, 0xbb67ae85, 0x3c6ef372, 0xa54ff53a,
	0x510e527f, 0x9b05688c, 0x1f83d9ab, 0x5be0cd19,
}

type Digest struct {
	h   [8]uint32       // current chain value
	x   [BlockSize]byte // buffer for data not yet compressed
	nx  int             // number of bytes in buffer
	len uint64          // total message length in bytes
}

func New() *Digest {
	d := new(Digest)
	d.Reset()
	return d
}

// Reset returns the chain value to the initial constants and empties the
// buffer.
func (d *Digest) Reset() {
	d.h = iv
	d.nx = 0
	d.len = 0
}

func (d *Digest) Size() int { return Size }

func (d *Digest) BlockSize() int { return BlockSize }

func (d *Digest) Write(p []byte) (nn int, err error) {
	nn = len(p)
	d.len += uint64(nn)
	if d.nx > 0 {
		n := copy(d.x[d.nx:], p)
		d.nx += n
		if d.nx == BlockSize {
			block(d, d.x[:])
			d.nx = 0
		}
		p = p[n:]
	}
	if len(p) >= BlockSize {
		n := len(p) &^ (BlockSize - 1)
		block(d, p[:n])
		p = p[n:]
	}
	if len(p) > 0 {
		d.nx = copy(d.x[:], p)
	}
	return
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
	l := d.len << 3 // message length in bits

	var pad [BlockSize + 8]byte
	pad[0] = 0x80
	// pad so that the length field closes a block
	if n := d.len % BlockSize; n < 56 {
		_, _ = d.Write(pad[:56-n])
	} else {
		_, _ = d.Write(pad[:BlockSize+56-n])
	}

	binary.BigEndian.PutUint64(pad[:8], l)
	_, _ = d.Write(pad[:8])

	if d.nx != 0 {
		panic("padding failed")
	}

	var out [Size]byte
	for i, s := range d.h {
		binary.BigEndian.PutUint32(out[i*4:], s)
	}
	return out
}

// Pad returns the framed message: msg, one 0x80 byte, zero fill, and the
// original bit length as a 64-bit big endian integer. The result length is
// always a positive multiple of BlockSize. Hashing the framed blocks
// without further padding is equivalent to hashing msg.
func Pad(msg []byte) []byte {
	l := uint64(len(msg)) << 3

	n := len(msg) + 1 + 8
	if n%BlockSize != 0 {
		n += BlockSize - n%BlockSize
	}

	out := make([]byte, n)
	copy(out, msg)
	out[len(msg)] = 0x80
	binary.BigEndian.PutUint64(out[n-8:], l)
	return out
}

// Sum256 returns the SHA-256 digest of data.
func Sum256(data []byte) [Size]byte {
	d := New()
	_, _ = d.Write(data)
	return d.checkSum()
}

// HexSum256 returns the SHA-256 digest of data as a lowercase hex string.
func HexSum256(data []byte) string {
	sum := Sum256(data)
	return fasthex.EncodeToString(sum[:])
}
