package types_test

import (
	"testing"

	"git.gammaspectra.live/P2Pool/blockhash/types"
	"git.gammaspectra.live/P2Pool/blockhash/utils"
)

const sampleHex = "00031d17e6d800fcad6619255ea3c2510fb553e0f953597ed1004e80a1d63787"

func TestHash_String(t *testing.T) {
	h := types.MustHashFromString(sampleHex)
	if h.String() != sampleHex {
		t.Fatalf("expected %s, got %s", sampleHex, h)
	}
}

func TestHash_FromString_Errors(t *testing.T) {
	if _, err := types.HashFromString("abcd"); err == nil {
		t.Error("short hex accepted")
	}
	if _, err := types.HashFromString(sampleHex[:63] + "x"); err == nil {
		t.Error("invalid hex accepted")
	}
}

func TestHash_JSON(t *testing.T) {
	h := types.MustHashFromString(sampleHex)

	buf, err := utils.MarshalJSON(h)
	if err != nil {
		t.Fatal(err)
	}
	if string(buf) != "\""+sampleHex+"\"" {
		t.Fatalf("unexpected encoding %s", buf)
	}

	var h2 types.Hash
	if err = utils.UnmarshalJSON(buf, &h2); err != nil {
		t.Fatal(err)
	}
	if h2 != h {
		t.Fatalf("expected %s, got %s", h, h2)
	}
}

func TestBytes_JSON(t *testing.T) {
	b := types.Bytes{0x00, 0xff, 0x10}

	buf, err := utils.MarshalJSON(b)
	if err != nil {
		t.Fatal(err)
	}
	if string(buf) != "\"00ff10\"" {
		t.Fatalf("unexpected encoding %s", buf)
	}

	var b2 types.Bytes
	if err = utils.UnmarshalJSON(buf, &b2); err != nil {
		t.Fatal(err)
	}
	if b2.String() != b.String() {
		t.Fatalf("expected %s, got %s", b, b2)
	}
}
