// Package mining implements the brute-force nonce search: ascending
// candidate nonces are appended to a base message as decimal text and
// hashed with a fresh engine until the digest carries the required number
// of leading zero hex characters.
package mining

import (
	"context"
	"strconv"
	"strings"
	"time"

	"git.gammaspectra.live/P2Pool/blockhash/digest"
	"git.gammaspectra.live/P2Pool/blockhash/digest/fastmix"
	"git.gammaspectra.live/P2Pool/blockhash/utils"
)

// Result reports the outcome of a nonce search. Exhausting the bound is a
// normal outcome, not an error: Found is false and Attempts equals the
// bound.
type Result struct {
	Found    bool          `json:"found"`
	Nonce    uint64        `json:"nonce"`
	Digest   string        `json:"digest,omitempty"`
	Attempts uint64        `json:"attempts"`
	Elapsed  time.Duration `json:"elapsed"`
}

// HashRate returns attempts per second over the elapsed wall clock time.
func (r Result) HashRate() float64 {
	if r.Elapsed <= 0 {
		return 0
	}
	return float64(r.Attempts) / r.Elapsed.Seconds()
}

// progressInterval Attempts between progress log lines.
const progressInterval = 100000

// Search scans nonces 0..maxNonce-1 in ascending order and returns the
// first nonce whose digest of base++decimal(nonce) starts with
// leadingZeros '0' hex characters. Ascending iteration makes the returned
// nonce the minimal one. The context is checked at every iteration
// boundary; cancellation surfaces as a NotFound result carrying the
// attempts made so far.
func Search(ctx context.Context, variant digest.Variant, mode fastmix.Mode, base []byte, leadingZeros int, maxNonce uint64) Result {
	target := strings.Repeat("0", leadingZeros)
	start := time.Now()

	buf := make([]byte, len(base), len(base)+20)
	copy(buf, base)

	for nonce := uint64(0); nonce < maxNonce; nonce++ {
		if nonce&1023 == 0 && ctx.Err() != nil {
			return Result{Attempts: nonce, Elapsed: time.Since(start)}
		}
		if nonce > 0 && nonce%progressInterval == 0 {
			utils.Debugf("mining", "trying nonce %d", nonce)
		}

		candidate := strconv.AppendUint(buf, nonce, 10)
		h := digest.Sum(variant, mode, candidate)
		if strings.HasPrefix(h, target) {
			return Result{
				Found:    true,
				Nonce:    nonce,
				Digest:   h,
				Attempts: nonce + 1,
				Elapsed:  time.Since(start),
			}
		}
	}

	return Result{Attempts: maxNonce, Elapsed: time.Since(start)}
}
