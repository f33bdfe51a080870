package main

import (
	"context"
	"flag"
	"os"

	"git.gammaspectra.live/P2Pool/blockhash/digest"
	"git.gammaspectra.live/P2Pool/blockhash/digest/fastmix"
	"git.gammaspectra.live/P2Pool/blockhash/mining"
	"git.gammaspectra.live/P2Pool/blockhash/utils"
)

func main() {
	text := flag.String("text", "Hello, world", "base message to mine over")
	zeros := flag.Int("zeros", 3, "required leading zero hex characters")
	maxNonce := flag.Uint64("max-nonce", 10000000, "nonce bound")
	variant := flag.String("variant", "", "digest variant (sha256, fastmix); default runs both")
	mode := flag.String("mode", "standard", "fastmix mode (fast, standard, secure)")
	routines := flag.Int("routines", 1, "parallel mining routines, <= 0 picks from CPU count")
	debug := flag.Bool("debug", false, "log mining progress")
	flag.Parse()

	if *debug {
		utils.GlobalLogLevel |= utils.LogLevelDebug | utils.LogLevelNotice
	}

	var m fastmix.Mode
	switch *mode {
	case "fast":
		m = fastmix.Fast
	case "standard":
		m = fastmix.Standard
	case "secure":
		m = fastmix.Secure
	default:
		utils.Fatalf("unknown mode %s", *mode)
	}

	var variants []digest.Variant
	switch *variant {
	case "sha256":
		variants = []digest.Variant{digest.StandardDigest}
	case "fastmix":
		variants = []digest.Variant{digest.FastMixDigest}
	case "":
		variants = []digest.Variant{digest.StandardDigest, digest.FastMixDigest}
	default:
		utils.Fatalf("unknown variant %s", *variant)
	}

	ctx := context.Background()

	for _, v := range variants {
		utils.Logf("main", "mining %q over %s for %d leading zeros", *text, v, *zeros)

		var result mining.Result
		if *routines == 1 {
			result = mining.Search(ctx, v, m, []byte(*text), *zeros, *maxNonce)
		} else {
			result = mining.SearchParallel(ctx, v, m, []byte(*text), *zeros, *maxNonce, *routines)
		}

		if result.Found {
			utils.Logf("main", "found nonce %d after %d attempts in %s (%sH/s)",
				result.Nonce, result.Attempts, result.Elapsed, utils.SiUnits(result.HashRate(), 2))
		} else {
			utils.Logf("main", "no matching nonce in %d attempts", result.Attempts)
		}

		buf, err := utils.MarshalJSONIndent(result, "  ")
		if err != nil {
			utils.Fatalf("%s", err)
		}
		buf = append(buf, '\n')
		_, _ = os.Stdout.Write(buf)
	}
}
