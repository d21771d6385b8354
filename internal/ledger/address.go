package ledger

import (
	"crypto/sha256"
	"encoding/hex"
)

// PlayerID is the opaque identity a game account is bound to. It doubles as
// the address of the player's own native wallet.
type PlayerID string

// Address locates a persisted record. Game account addresses are derived, not
// chosen by the caller.
type Address string

// accountTag is the domain tag mixed into every game account address so the
// same owner identity cannot collide with records of other kinds.
const accountTag = "game_state"

// VaultAddress is the well-known program-controlled address holding the
// fungible tokens paid out as rare rewards.
const VaultAddress Address = "vault"

// DeriveAddress computes the unique game account address for a player along
// with the nonce byte that is persisted as the account's derivation proof.
func DeriveAddress(player PlayerID) (Address, uint8) {
	sum := sha256.Sum256([]byte(accountTag + ":" + string(player)))

	return Address(hex.EncodeToString(sum[:])), sum[0]
}

// VerifyAddress re-derives the address for owner and checks both the address
// and the stored nonce. A mismatch means the record was not created through
// the derivation scheme and must not be acted on.
func VerifyAddress(owner PlayerID, addr Address, nonce uint8) bool {
	want, wantNonce := DeriveAddress(owner)

	return addr == want && nonce == wantNonce
}
