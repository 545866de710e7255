package common

import (
	"math/big"

	gethCommon "github.com/ethereum/go-ethereum/common"
)

type Log struct {
	Address         gethCommon.Address `json:"address"`
	Topics          []gethCommon.Hash  `json:"topics"`
	Data            []byte             `json:"data"`
	LogIndex        uint64             `json:"log_index"`
	TransactionHash string             `json:"transaction_hash"`
}

// BlockData is one block's worth of input to the pipeline: the flattened
// call trees of every transaction plus the log events matching the
// tracked-contract filter.
type BlockData struct {
	ChainId      *big.Int      `json:"chain_id"`
	Number       *big.Int      `json:"number"`
	Hash         string        `json:"hash"`
	Timestamp    uint64        `json:"timestamp"`
	Transactions []Transaction `json:"transactions"`
	Logs         []Log         `json:"logs"`
}
