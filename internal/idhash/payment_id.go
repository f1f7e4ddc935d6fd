// Package idhash derives deterministic record identifiers. Backfills and
// re-runs must produce the same ID for the same upstream record so that
// append-only stores can reject duplicates instead of accumulating them.
package idhash

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

// ComputePaymentID computes a deterministic payment ID using SHA256.
// Formula: SHA256(ticker|ex_date|source)
// Returns hex-encoded hash (64 characters).
func ComputePaymentID(ticker string, exDate time.Time, source string) string {
	data := fmt.Sprintf("%s|%s|%s",
		ticker,
		exDate.UTC().Format("2006-01-02"),
		source,
	)

	hash := sha256.Sum256([]byte(data))
	return hex.EncodeToString(hash[:])
}
