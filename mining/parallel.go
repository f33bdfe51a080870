package mining

import (
	"context"
	"math"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"git.gammaspectra.live/P2Pool/blockhash/digest"
	"git.gammaspectra.live/P2Pool/blockhash/digest/fastmix"
	"git.gammaspectra.live/P2Pool/blockhash/utils"
)

// chunkSize Nonces per work unit handed to a routine.
const chunkSize = 1 << 16

// SearchParallel partitions the nonce space into contiguous chunks and
// scans them across routines. Each routine owns its engines; a shared
// atomic best nonce lets routines skip chunks that can no longer win.
// The result is the global minimum over all routine-local finds, so it
// equals what Search would return. routines <= 0 picks from the CPU count.
func SearchParallel(ctx context.Context, variant digest.Variant, mode fastmix.Mode, base []byte, leadingZeros int, maxNonce uint64, routines int) Result {
	target := strings.Repeat("0", leadingZeros)
	start := time.Now()

	numChunks := (maxNonce + chunkSize - 1) / chunkSize

	var best atomic.Uint64
	best.Store(math.MaxUint64)

	var scanned atomic.Uint64

	var mu sync.Mutex
	var bestResult Result

	_ = utils.SplitWork(routines, numChunks, func(chunk uint64, routineIndex int) error {
		begin := chunk * chunkSize
		end := min(begin+chunkSize, maxNonce)

		// a chunk entirely above the current best cannot contain a
		// smaller winning nonce
		if begin >= best.Load() {
			return nil
		}
		if ctx.Err() != nil {
			return nil
		}

		buf := make([]byte, len(base), len(base)+20)
		copy(buf, base)

		for nonce := begin; nonce < end; nonce++ {
			candidate := strconv.AppendUint(buf, nonce, 10)
			h := digest.Sum(variant, mode, candidate)
			if strings.HasPrefix(h, target) {
				storeMin(&best, nonce)

				mu.Lock()
				if !bestResult.Found || nonce < bestResult.Nonce {
					bestResult = Result{Found: true, Nonce: nonce, Digest: h}
				}
				mu.Unlock()

				utils.Debugf("mining", "routine %d found candidate nonce %d", routineIndex, nonce)

				// higher nonces in this chunk cannot beat it
				scanned.Add(nonce - begin + 1)
				return nil
			}
		}

		scanned.Add(end - begin)
		return nil
	}, nil)

	elapsed := time.Since(start)

	if bestResult.Found {
		bestResult.Attempts = bestResult.Nonce + 1
		bestResult.Elapsed = elapsed
		return bestResult
	}

	attempts := maxNonce
	if ctx.Err() != nil {
		attempts = min(attempts, scanned.Load())
	}
	return Result{Attempts: attempts, Elapsed: elapsed}
}

func storeMin(a *atomic.Uint64, v uint64) {
	for {
		cur := a.Load()
		if v >= cur {
			return
		}
		if a.CompareAndSwap(cur, v) {
			return
		}
	}
}
