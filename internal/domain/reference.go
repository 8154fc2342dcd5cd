package domain

import (
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/google/uuid"
)

// NewReference generates an opaque charge reference token. The token is a
// keccak hash in 0x-hex form so it is shaped like a chain transaction hash,
// but no settlement happens here.
func NewReference() string {
	id := uuid.New()
	payload := append(id[:], []byte(time.Now().UTC().Format(time.RFC3339Nano))...)
	return crypto.Keccak256Hash(payload).Hex()
}

// ValidSettlementAddress reports whether s is a well-formed 0x address
// usable as a service payout target.
func ValidSettlementAddress(s string) bool {
	return common.IsHexAddress(s)
}
