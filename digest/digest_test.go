package digest

import (
	"errors"
	"testing"

	"git.gammaspectra.live/P2Pool/blockhash/digest/fastmix"
	"git.gammaspectra.live/P2Pool/blockhash/digest/sha256"
)

func TestSumDispatch(t *testing.T) {
	data := []byte("dispatch check")

	if h := Sum(StandardDigest, fastmix.Standard, data); h != sha256.HexSum256(data) {
		t.Errorf("StandardDigest dispatch mismatch: %s", h)
	}
	if h := Sum(FastMixDigest, fastmix.Secure, data); h != fastmix.HexSum(data, fastmix.Secure) {
		t.Errorf("FastMixDigest dispatch mismatch: %s", h)
	}
}

func TestSumAny(t *testing.T) {
	expected := Sum(StandardDigest, fastmix.Standard, []byte("text"))

	if h, err := SumAny(StandardDigest, fastmix.Standard, "text"); err != nil || h != expected {
		t.Errorf("string input: %s, %v", h, err)
	}
	if h, err := SumAny(StandardDigest, fastmix.Standard, []byte("text")); err != nil || h != expected {
		t.Errorf("bytes input: %s, %v", h, err)
	}
	if _, err := SumAny(StandardDigest, fastmix.Standard, 42); !errors.Is(err, ErrInputType) {
		t.Errorf("expected ErrInputType, got %v", err)
	}
}

func TestEngineContract(t *testing.T) {
	for _, v := range []Variant{StandardDigest, FastMixDigest} {
		t.Run(v.String(), func(t *testing.T) {
			e := NewEngine(v, fastmix.Standard)

			if e.BlockSize() != v.BlockSize() {
				t.Errorf("block size mismatch: %d vs %d", e.BlockSize(), v.BlockSize())
			}
			if e.Size()*2 != v.StateWords()*v.WordBits()/4 {
				t.Errorf("output size inconsistent with variant parameters")
			}

			_, _ = e.Write([]byte("partial "))
			first := e.HexSum()
			if second := e.HexSum(); second != first {
				t.Errorf("digest not idempotent: %s vs %s", first, second)
			}
			if len(first) != 64 {
				t.Errorf("digest has %d hex characters", len(first))
			}

			_, _ = e.Write([]byte("input"))
			if e.HexSum() != Sum(v, fastmix.Standard, []byte("partial input")) {
				t.Errorf("digest interrupted the stream")
			}

			e.Reset()
			if e.HexSum() != Sum(v, fastmix.Standard, nil) {
				t.Errorf("reset did not restore initial state")
			}
		})
	}
}

func TestVariantParameters(t *testing.T) {
	if StandardDigest.WordBits() != 32 || StandardDigest.StateWords() != 8 {
		t.Error("StandardDigest parameters wrong")
	}
	if FastMixDigest.WordBits() != 64 || FastMixDigest.StateWords() != 4 {
		t.Error("FastMixDigest parameters wrong")
	}
	if StandardDigest.BlockSize() != 64 || FastMixDigest.BlockSize() != 64 {
		t.Error("block sizes wrong")
	}
}
