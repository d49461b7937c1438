package econ

import (
	"crypto/sha256"
	"encoding/hex"
)

// Domain prefixes for content-addressed identity.
// Version suffix enables future algorithm migration.
const (
	DomainSnapshot = "statecraft/snapshot/v1"
	DomainHistory  = "statecraft/history/v1"
)

// hashWithDomain computes SHA-256 with domain separation.
// Format: SHA256(domain + 0x00 + data). The null separator prevents
// domain/data boundary ambiguity.
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// Hash computes the content-addressed identity of a snapshot.
// Two snapshots hash equal iff their canonical encodings are
// byte-identical, which is exactly the determinism property the
// engine guarantees for replays.
func (s *Snapshot) Hash() (string, error) {
	data, err := MarshalCanonical(s)
	if err != nil {
		return "", err
	}
	return hashWithDomain(DomainSnapshot, data), nil
}

// Hash computes a single identity covering every snapshot in order.
// Used by replay verification to compare whole runs cheaply.
func (h History) Hash() (string, error) {
	acc := sha256.New()
	acc.Write([]byte(DomainHistory))
	acc.Write([]byte{0x00})
	for _, s := range h {
		hs, err := s.Hash()
		if err != nil {
			return "", err
		}
		acc.Write([]byte(hs))
	}
	return hex.EncodeToString(acc.Sum(nil)), nil
}
