// Package analyzer measures statistical behavior of a digest function
// through its public contract only: a pure bytes to hex string function.
// It implements the avalanche, collision and distribution measurements
// used to compare the two hash variants.
package analyzer

import (
	"encoding/binary"
	"math/bits"
	unsafeRandom "math/rand/v2"

	"github.com/dolthub/swiss"
	fasthex "github.com/tmthrgd/go-hex"
)

// Func is the collaborator contract exposed by the digest engines.
type Func func([]byte) string

// AvalancheReport summarizes how many output bits flip when a single input
// bit is flipped. Fractions are of the total output bits.
type AvalancheReport struct {
	Trials int     `json:"trials"`
	Mean   float64 `json:"mean"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
}

// Avalanche runs trials random single-bit flips over msgLen byte messages
// and reports the fraction of flipped output bits. A strong hash averages
// around 0.5; the FastMix variant legitimately deviates and its number is
// reported, not judged.
func Avalanche(fn Func, rng *unsafeRandom.Rand, trials, msgLen int) AvalancheReport {
	report := AvalancheReport{Trials: trials, Min: 1}

	msg := make([]byte, msgLen)
	for range trials {
		fillRandom(rng, msg)

		before, err := fasthex.DecodeString(fn(msg))
		if err != nil {
			panic(err)
		}

		bit := rng.IntN(msgLen * 8)
		msg[bit>>3] ^= 1 << (bit & 7)

		after, err := fasthex.DecodeString(fn(msg))
		if err != nil {
			panic(err)
		}

		var flipped int
		for i := range before {
			flipped += bits.OnesCount8(before[i] ^ after[i])
		}

		fraction := float64(flipped) / float64(len(before)*8)
		report.Mean += fraction
		report.Min = min(report.Min, fraction)
		report.Max = max(report.Max, fraction)
	}

	if trials > 0 {
		report.Mean /= float64(trials)
	}
	return report
}

// CollisionReport summarizes a random-input collision scan.
type CollisionReport struct {
	Inputs     int `json:"inputs"`
	Unique     int `json:"unique"`
	Collisions int `json:"collisions"`
}

// Collisions hashes n random msgLen byte messages and counts distinct
// digests. Duplicate inputs are skipped so every counted collision is a
// real digest collision.
func Collisions(fn Func, rng *unsafeRandom.Rand, n, msgLen int) CollisionReport {
	seen := swiss.NewMap[string, struct{}](uint32(n))
	digests := swiss.NewMap[string, struct{}](uint32(n))

	msg := make([]byte, msgLen)
	inputs := 0
	for inputs < n {
		fillRandom(rng, msg)
		key := string(msg)
		if seen.Has(key) {
			continue
		}
		seen.Put(key, struct{}{})
		inputs++

		digests.Put(fn(msg), struct{}{})
	}

	return CollisionReport{
		Inputs:     inputs,
		Unique:     digests.Count(),
		Collisions: inputs - digests.Count(),
	}
}

// NibbleDistribution hashes n random messages and tallies the frequency of
// each hex character across all outputs. A uniform hash tends towards
// equal counts.
func NibbleDistribution(fn Func, rng *unsafeRandom.Rand, n, msgLen int) (counts [16]uint64) {
	msg := make([]byte, msgLen)
	for range n {
		fillRandom(rng, msg)
		for _, c := range []byte(fn(msg)) {
			switch {
			case c >= '0' && c <= '9':
				counts[c-'0']++
			case c >= 'a' && c <= 'f':
				counts[c-'a'+10]++
			}
		}
	}
	return counts
}

func fillRandom(rng *unsafeRandom.Rand, buf []byte) {
	var word [8]byte
	for i := 0; i < len(buf); i += 8 {
		binary.LittleEndian.PutUint64(word[:], rng.Uint64())
		copy(buf[i:], word[:])
	}
}
