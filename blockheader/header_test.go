package blockheader_test

import (
	"testing"

	"git.gammaspectra.live/P2Pool/blockhash/blockheader"
	"git.gammaspectra.live/P2Pool/blockhash/types"
	"git.gammaspectra.live/P2Pool/blockhash/utils"
	"github.com/sclevine/spec"
	"github.com/sclevine/spec/report"
	fasthex "github.com/tmthrgd/go-hex"
)

func testHeader() blockheader.Header {
	var prev, merkle types.Hash
	for i := range prev {
		prev[i] = byte(i)
		merkle[i] = byte(i + 32)
	}
	return blockheader.Header{
		Version:    2,
		PrevHash:   prev,
		MerkleRoot: merkle,
		Timestamp:  1700000000,
		Bits:       0x1d00ffff,
	}
}

// fixed wire layout, verified against the reference byte stream
const testHeaderHex = "02000000" +
	"000102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f" +
	"202122232425262728292a2b2c2d2e2f303132333435363738393a3b3c3d3e3f" +
	"00f15365" + "ffff001d" + "00000000"

func TestHeader(t *testing.T) {
	spec.Run(t, "MarshalBinary", func(t *testing.T, when spec.G, it spec.S) {
		it("produces the exact 80-byte layout", func() {
			h := testHeader()
			buf, err := h.MarshalBinary()
			if err != nil {
				t.Fatal(err)
			}
			if len(buf) != blockheader.Size {
				t.Fatalf("expected %d bytes, got %d", blockheader.Size, len(buf))
			}
			if actual := fasthex.EncodeToString(buf); actual != testHeaderHex {
				t.Errorf("expected %s, got %s", testHeaderHex, actual)
			}
		})

		it("replaces only the nonce in WithNonce", func() {
			h := testHeader()
			buf := h.WithNonce(0xdeadbeef)
			if actual := fasthex.EncodeToString(buf[:blockheader.Size-4]); actual != testHeaderHex[:len(testHeaderHex)-8] {
				t.Errorf("prefix changed: %s", actual)
			}
			if actual := fasthex.EncodeToString(buf[blockheader.Size-4:]); actual != "efbeadde" {
				t.Errorf("nonce not little endian: %s", actual)
			}
			if h.Nonce != 0 {
				t.Errorf("header mutated")
			}
		})
	}, spec.Report(report.Log{}))

	spec.Run(t, "UnmarshalBinary", func(t *testing.T, when spec.G, it spec.S) {
		it("round-trips", func() {
			h := testHeader()
			h.Nonce = 12345
			buf, err := h.MarshalBinary()
			if err != nil {
				t.Fatal(err)
			}

			var h2 blockheader.Header
			if err = h2.UnmarshalBinary(buf); err != nil {
				t.Fatal(err)
			}
			if h2 != h {
				t.Errorf("expected %+v, got %+v", h, h2)
			}
		})

		it("fails w/ wrong size", func() {
			var h blockheader.Header
			if err := h.UnmarshalBinary(make([]byte, blockheader.Size-1)); err != blockheader.ErrHeaderSize {
				t.Errorf("expected ErrHeaderSize, got %v", err)
			}
			if err := h.UnmarshalBinary(make([]byte, blockheader.Size+1)); err != blockheader.ErrHeaderSize {
				t.Errorf("expected ErrHeaderSize, got %v", err)
			}
		})
	}, spec.Report(report.Log{}))
}

func TestHeaderJSON(t *testing.T) {
	h := testHeader()
	buf, err := utils.MarshalJSON(h)
	if err != nil {
		t.Fatal(err)
	}

	var h2 blockheader.Header
	if err = utils.UnmarshalJSON(buf, &h2); err != nil {
		t.Fatal(err)
	}
	if h2 != h {
		t.Errorf("expected %+v, got %+v", h, h2)
	}
}
