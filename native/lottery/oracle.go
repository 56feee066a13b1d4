package lottery

import (
	"encoding/binary"

	ethcrypto "github.com/ethereum/go-ethereum/crypto"
)

// Oracle supplies the final six digit number for a round. The engine only
// consumes the output; how the entropy is sourced is the oracle's business.
type Oracle interface {
	Draw(roundID uint64, seed []byte) (uint32, error)
}

// KeccakOracle derives the final number from keccak256(seed || roundID).
// Given the same seed it is fully deterministic, which keeps draws auditable:
// anyone holding the seed can recompute the winning number.
type KeccakOracle struct{}

// Draw implements the Oracle interface.
func (KeccakOracle) Draw(roundID uint64, seed []byte) (uint32, error) {
	if len(seed) == 0 {
		return 0, ErrEmptySeed
	}
	var idBytes [8]byte
	binary.BigEndian.PutUint64(idBytes[:], roundID)
	digest := ethcrypto.Keccak256(seed, idBytes[:])
	raw := binary.BigEndian.Uint64(digest[:8])
	span := uint64(MaxTicketNumber - MinTicketNumber + 1)
	return uint32(raw%span) + MinTicketNumber, nil
}
