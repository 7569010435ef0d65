package protocol

import (
	"crypto/rand"
	"fmt"
	"time"
)

const suffixAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
const suffixLength = 6

// Generate produces a human-readable protocol identifier:
// a 14-digit UTC timestamp followed by a 6-character uppercase alphanumeric
// suffix, e.g. "20240510143502-K7Q2ZD".
//
// Uniqueness is only probabilistic (second-granularity timestamp plus random
// suffix); the store enforces a UNIQUE constraint on the column and the
// create path retries generation on a collision.
func Generate(now time.Time) string {
	return fmt.Sprintf("%s-%s", now.UTC().Format("20060102150405"), randomSuffix())
}

func randomSuffix() string {
	buf := make([]byte, suffixLength)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand never fails on supported platforms; a broken entropy
		// source is not recoverable here.
		panic(fmt.Sprintf("protocol: rand.Read: %v", err))
	}
	for i, b := range buf {
		buf[i] = suffixAlphabet[int(b)%len(suffixAlphabet)]
	}
	return string(buf)
}
