package entities

import (
	"encoding/hex"
	"time"
)

// EvidenceDigestBytes is the required decoded length of an evidence digest.
// Digests travel as lowercase hex; the payload itself never enters the system.
const EvidenceDigestBytes = 32

type Evidence struct {
	EvidenceID  int64
	DisputeID   int64
	Submitter   string
	Digest      string
	SubmittedAt time.Time
}

// ValidDigest reports whether s is a hex string decoding to exactly
// EvidenceDigestBytes bytes.
func ValidDigest(s string) bool {
	raw, err := hex.DecodeString(s)
	if err != nil {
		return false
	}
	return len(raw) == EvidenceDigestBytes
}
