package mining

import (
	"errors"
	"strings"
	"time"

	"git.gammaspectra.live/P2Pool/blockhash/digest/fastmix"
	"git.gammaspectra.live/P2Pool/blockhash/types"
	"git.gammaspectra.live/P2Pool/blockhash/utils"
)

// ErrHashSize an expected hash of the wrong length was handed to a verify
// call.
var ErrHashSize = errors.New("wrong hash size")

// MineHeader scans nonces 0..maxNonce-1 over a serialized block header
// using the FastMix nonce fast path in Fast mode. The header is ingested
// once; each attempt copies that midstate and mixes the candidate nonce in,
// so the per-nonce cost is a handful of word operations. Returns the first
// (minimal) winning nonce and its digest, or ok == false after the bound.
func MineHeader(header []byte, leadingZeros int, maxNonce uint64) (nonce uint64, hexDigest string, ok bool) {
	target := strings.Repeat("0", leadingZeros)
	start := time.Now()

	base := fastmix.New(fastmix.Fast)
	_, _ = base.Write(header)

	for nonce = 0; nonce < maxNonce; nonce++ {
		d := *base
		d.MixNonce(nonce)
		h := d.HexSum()
		if strings.HasPrefix(h, target) {
			utils.Noticef("mining", "header mined: nonce %d, %sH/s",
				nonce, utils.SiUnits(float64(nonce+1)/max(time.Since(start).Seconds(), 1e-9), 2))
			return nonce, h, true
		}
	}

	return 0, "", false
}

// VerifyHeader re-derives the digest for a claimed (header, nonce) pair in
// the given mode and compares it to the expected hash. The mode must match
// the one used when mining; MineHeader uses Fast.
func VerifyHeader(header []byte, nonce uint64, expectedHex string, mode fastmix.Mode) (bool, error) {
	if len(expectedHex) != types.HashSize*2 {
		return false, ErrHashSize
	}
	return fastmix.SumWithNonce(header, nonce, mode) == expectedHex, nil
}
