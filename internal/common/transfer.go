package common

import (
	"fmt"

	gethCommon "github.com/ethereum/go-ethereum/common"
)

// NullAddress marks a missing party on a transfer: a mint carries a null
// `from`, a burn a null `to`.
var NullAddress = gethCommon.Address{}

// Transfer is one ownership movement of the tracked NFT contract.
// Ordinal is the event's position in the block's log sequence and is the
// merge-order key for the balance ledger, not a uniqueness key.
type Transfer struct {
	TrxHash string             `json:"trx_hash"`
	From    gethCommon.Address `json:"from"`
	To      gethCommon.Address `json:"to"`
	TokenId uint64             `json:"token_id"`
	Ordinal uint64             `json:"ordinal"`
}

// BalanceKey is the sole identity of a ledger entry. Identical
// holder+contract always produce the same key.
func BalanceKey(holder gethCommon.Address, contract gethCommon.Address) string {
	return fmt.Sprintf("total:%s:%s", gethCommon.Bytes2Hex(holder.Bytes()), gethCommon.Bytes2Hex(contract.Bytes()))
}
