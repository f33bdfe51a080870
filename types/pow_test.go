package types

import (
	"math/big"
	"runtime"
	"testing"
)

var (
	powHash          = MustHashFromString("abcf2c2ee4a64a683f24bedb2099dd16ae08c03a1ecc1208bf93a90200000000")
	lowDifficulty    = DifficultyFrom64(2062136440)
	powDifficulty    = DifficultyFrom64(412975968250)
	mediumDifficulty = DifficultyFrom64(229654626174)
)

func TestDifficultyFromPoW(t *testing.T) {
	diff := DifficultyFromPoW(powHash)

	if !diff.Equals(powDifficulty) {
		t.Errorf("%s does not equal %s", diff, powDifficulty)
	}
}

func TestDifficulty_CheckPoW(t *testing.T) {
	if !mediumDifficulty.CheckPoW(powHash) {
		t.Errorf("%s does not pass PoW %s", powHash, mediumDifficulty)
	}

	if !lowDifficulty.CheckPoW(powHash) {
		t.Errorf("%s does not pass PoW %s", powHash, lowDifficulty)
	}

	if !powDifficulty.CheckPoW(powHash) {
		t.Errorf("%s does not pass PoW %s", powHash, powDifficulty)
	}

	powHash2 := powHash
	powHash2[len(powHash2)-1]++

	if mediumDifficulty.CheckPoW(powHash2) {
		t.Errorf("%s does pass PoW %s incorrectly", powHash2, mediumDifficulty)
	}

	if lowDifficulty.CheckPoW(powHash2) {
		t.Errorf("%s does pass PoW %s incorrectly", powHash2, lowDifficulty)
	}

	powHash3 := powHash
	powHash3[len(powHash3)-9]++

	if powDifficulty.CheckPoW(powHash3) {
		t.Errorf("%s does pass PoW %s incorrectly", powHash3, powDifficulty)
	}
}

func TestHash_LeadingZeroNibbles(t *testing.T) {
	for _, entry := range []struct {
		hash     string
		expected int
	}{
		{"abcf2c2ee4a64a683f24bedb2099dd16ae08c03a1ecc1208bf93a90200000000", 0},
		{"0018289b07834da76cd3380a9f4821ef5d712861d7c8ed64a19767dcc6951a2e", 2},
		{"00031d17e6d800fcad6619255ea3c2510fb553e0f953597ed1004e80a1d63787", 3},
		{"0000000000000000000000000000000000000000000000000000000000000000", 64},
	} {
		h := MustHashFromString(entry.hash)
		if n := h.LeadingZeroNibbles(); n != entry.expected {
			t.Errorf("%s: expected %d leading zero nibbles, got %d", entry.hash, entry.expected, n)
		}
	}
}

func BenchmarkDifficulty_CheckPoW(b *testing.B) {
	b.ReportAllocs()
	var result bool
	for b.Loop() {
		result = mediumDifficulty.CheckPoW(powHash)
	}
	runtime.KeepAlive(result)
}

func FuzzDifficulty_CheckPoW(f *testing.F) {
	f.Add(powHash[:], lowDifficulty.Lo, lowDifficulty.Hi)
	f.Add(powHash[:], powDifficulty.Lo, powDifficulty.Hi)
	f.Add(ZeroHash[:], uint64(0), uint64(0))

	f.Fuzz(func(t *testing.T, hash []byte, lo, hi uint64) {
		if len(hash) != HashSize {
			t.SkipNow()
		}

		d := NewDifficulty(lo, hi)
		h := Hash(hash)

		var le [HashSize]byte
		for i := range le {
			le[i] = h[HashSize-1-i]
		}
		product := new(big.Int).Mul(d.Big(), new(big.Int).SetBytes(le[:]))

		result := d.CheckPoW(h)
		result2 := product.Cmp(max256) < 0

		if result != result2 {
			t.Fatalf("%s diff lo,hi = %d, %d result mismatch: %v vs reference %v", h, lo, hi, result, result2)
		}
	})
}
