package types

import (
	"encoding/binary"
	"errors"
	"math/big"
	"math/bits"
	"strconv"
	"strings"

	fasthex "github.com/tmthrgd/go-hex"
	"lukechampine.com/uint128"
)

const DifficultySize = 16

//nolint:recvcheck
type Difficulty struct {
	uint128.Uint128
}

var ZeroDifficulty = Difficulty{Uint128: uint128.Zero}
var MaxDifficulty = Difficulty{Uint128: uint128.Max}

func NewDifficulty(lo, hi uint64) Difficulty {
	return Difficulty{Uint128: uint128.New(lo, hi)}
}

func DifficultyFrom64(v uint64) Difficulty {
	return Difficulty{Uint128: uint128.From64(v)}
}

func DifficultyFromString(s string) (Difficulty, error) {
	s = strings.TrimPrefix(s, "0x")
	if len(s)%2 == 1 {
		s = "0" + s
	}
	if len(s) > DifficultySize*2 {
		return ZeroDifficulty, errors.New("wrong difficulty size")
	}
	var buf [DifficultySize]byte
	if _, err := fasthex.Decode(buf[DifficultySize-len(s)/2:], []byte(s)); err != nil {
		return ZeroDifficulty, err
	}
	return Difficulty{Uint128: uint128.New(
		binary.BigEndian.Uint64(buf[8:]),
		binary.BigEndian.Uint64(buf[:8]),
	)}, nil
}

// DifficultyFromPoW derives the effective difficulty a proof hash meets,
// 2^256 divided by the hash interpreted as a little endian integer.
func DifficultyFromPoW(pow Hash) Difficulty {
	if pow == ZeroHash {
		return MaxDifficulty
	}

	var le [HashSize]byte
	for i := range le {
		le[i] = pow[HashSize-1-i]
	}

	powValue := new(big.Int).SetBytes(le[:])
	d := new(big.Int).Div(max256, powValue)
	if d.Cmp(maxDifficulty128) > 0 {
		return MaxDifficulty
	}
	return Difficulty{Uint128: uint128.FromBig(d)}
}

var max256 = new(big.Int).Lsh(big.NewInt(1), 256)
var maxDifficulty128 = MaxDifficulty.Big()

func (d Difficulty) IsZero() bool {
	return d.Uint128.IsZero()
}

func (d Difficulty) Equals(v Difficulty) bool {
	return d.Uint128.Equals(v.Uint128)
}

func (d Difficulty) Cmp(v Difficulty) int {
	return d.Uint128.Cmp(v.Uint128)
}

func (d Difficulty) Add(v Difficulty) Difficulty {
	return Difficulty{Uint128: d.Uint128.AddWrap(v.Uint128)}
}

func (d Difficulty) Sub(v Difficulty) Difficulty {
	return Difficulty{Uint128: d.Uint128.SubWrap(v.Uint128)}
}

func (d Difficulty) Mul64(v uint64) Difficulty {
	return Difficulty{Uint128: d.Uint128.MulWrap64(v)}
}

func (d Difficulty) Div(v Difficulty) Difficulty {
	return Difficulty{Uint128: d.Uint128.Div(v.Uint128)}
}

// CheckPoW reports whether pow meets this difficulty: the hash interpreted
// as a little endian 256-bit integer, multiplied by the difficulty, must
// still fit in 256 bits. Schoolbook 256x128 multiply, only the overflow
// words matter.
func (d Difficulty) CheckPoW(pow Hash) bool {
	if d.IsZero() {
		return true
	}

	var h [4]uint64
	for i := range h {
		h[i] = binary.LittleEndian.Uint64(pow[i*8:])
	}

	var p [6]uint64
	for j, dv := range [2]uint64{d.Lo, d.Hi} {
		// row = h * dv, five words
		var row [5]uint64
		var carry uint64
		for i, hv := range h {
			hi, lo := bits.Mul64(hv, dv)
			var c uint64
			row[i], c = bits.Add64(lo, carry, 0)
			carry = hi + c
		}
		row[4] = carry

		carry = 0
		for i, rv := range row {
			p[i+j], carry = bits.Add64(p[i+j], rv, carry)
		}
		if j+len(row) < len(p) {
			p[j+len(row)] += carry
		}
	}

	return p[4] == 0 && p[5] == 0
}

func (d Difficulty) String() string {
	var buf [DifficultySize]byte
	binary.BigEndian.PutUint64(buf[:8], d.Hi)
	binary.BigEndian.PutUint64(buf[8:], d.Lo)
	return fasthex.EncodeToString(buf[:])
}

func (d Difficulty) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatUint(d.Lo, 10)), nil
}

func (d *Difficulty) UnmarshalJSON(b []byte) error {
	if len(b) == 0 {
		return errors.New("invalid difficulty")
	}

	if b[0] == '"' {
		if len(b) < 2 || b[len(b)-1] != '"' {
			return errors.New("invalid difficulty")
		}
		diff, err := DifficultyFromString(string(b[1 : len(b)-1]))
		if err != nil {
			return err
		}
		*d = diff
		return nil
	}

	v, err := strconv.ParseUint(string(b), 10, 64)
	if err != nil {
		return err
	}
	*d = DifficultyFrom64(v)
	return nil
}
