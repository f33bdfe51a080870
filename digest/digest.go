// Package digest exposes the two block-hash variants of this module behind
// one dispatch surface: a standards-compliant compression function hash and
// an ARX mixing variant tuned for mining loops. Both produce 64 lowercase
// hex characters for any input.
package digest

import (
	"errors"
	"io"

	"git.gammaspectra.live/P2Pool/blockhash/digest/fastmix"
	"git.gammaspectra.live/P2Pool/blockhash/digest/sha256"
)

// Variant identifies a block-hash algorithm.
type Variant int

const (
	// StandardDigest SHA-256 compatible compression function hash.
	StandardDigest = Variant(iota)
	// FastMixDigest 64-bit ARX mixing variant, round count set by
	// fastmix.Mode.
	FastMixDigest
)

func (v Variant) String() string {
	switch v {
	case FastMixDigest:
		return "fastmix"
	default:
		return "sha256"
	}
}

// WordBits returns the state word width in bits.
func (v Variant) WordBits() int {
	if v == FastMixDigest {
		return 64
	}
	return 32
}

// StateWords returns the number of persistent state words.
func (v Variant) StateWords() int {
	if v == FastMixDigest {
		return 4
	}
	return 8
}

// BlockSize returns the compression block size in bytes. Both variants use
// 64-byte blocks.
func (v Variant) BlockSize() int {
	return 64
}

// Engine is the streaming surface shared by both variants. Sum and the
// HexSum helpers finalize a snapshot; the live state keeps accumulating.
type Engine interface {
	io.Writer
	Reset()
	Size() int
	BlockSize() int
	Sum(in []byte) []byte
	HexSum() string
}

// NewEngine returns a fresh engine for the variant. mode only applies to
// FastMixDigest.
func NewEngine(v Variant, mode fastmix.Mode) Engine {
	if v == FastMixDigest {
		return fastmix.New(mode)
	}
	return sha256.New()
}

// Sum hashes data with a fresh engine and returns 64 lowercase hex
// characters. Deterministic, pure function of input and variant
// parameters.
func Sum(v Variant, mode fastmix.Mode, data []byte) string {
	if v == FastMixDigest {
		return fastmix.HexSum(data, mode)
	}
	return sha256.HexSum256(data)
}

// ErrInputType input that is not bytes or text was handed to a boundary
// accepting any.
var ErrInputType = errors.New("input is not bytes or text")

// Bytes coerces boundary input into a byte slice. Callers holding typed
// data should pass []byte directly instead.
func Bytes(input any) ([]byte, error) {
	switch v := input.(type) {
	case []byte:
		return v, nil
	case string:
		return []byte(v), nil
	default:
		return nil, ErrInputType
	}
}

// SumAny is Sum for boundaries that accept loosely typed input. It fails
// with ErrInputType for anything that is not bytes or text.
func SumAny(v Variant, mode fastmix.Mode, input any) (string, error) {
	buf, err := Bytes(input)
	if err != nil {
		return "", err
	}
	return Sum(v, mode, buf), nil
}
