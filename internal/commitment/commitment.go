// Package commitment hashes registration secrets into the opaque keys the
// registration ledger stores.
package commitment

import (
	"github.com/goserg/hackathon/internal/domain"

	"golang.org/x/crypto/sha3"
)

// Hash returns the legacy Keccak-256 digest of secret, the same digest
// web3's sha3 produces for a UTF-8 string.
func Hash(secret string) domain.Commitment {
	h := sha3.NewLegacyKeccak256()
	h.Write([]byte(secret))
	var c domain.Commitment
	copy(c[:], h.Sum(nil))
	return c
}

func HashAll(secrets []string) []domain.Commitment {
	hashes := make([]domain.Commitment, 0, len(secrets))
	for _, s := range secrets {
		hashes = append(hashes, Hash(s))
	}
	return hashes
}
