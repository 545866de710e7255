// Package transfers extracts the tracked NFT contract's ownership
// movements from a block and applies them to the balance ledger.
package transfers

import (
	"encoding/binary"

	gethCommon "github.com/ethereum/go-ethereum/common"
	"github.com/rs/zerolog/log"
	"github.com/thirdweb-dev/token-streams/internal/common"
	"github.com/thirdweb-dev/token-streams/internal/metrics"
)

// keccak256("Transfer(address,address,uint256)")
var transferEventTopic = gethCommon.HexToHash("0xddf252ad1be2c89b69c2b068fc378daa952ba7f163c4a11628f55a4df523b3ef")

// Extract maps the tracked contract's Transfer events into normalized
// records. The ordinal is the event's position in the block's log
// sequence. ERC-721 Transfer carries all three parameters indexed, so
// only four-topic logs qualify.
func Extract(tracked gethCommon.Address, block common.BlockData) []common.Transfer {
	var result []common.Transfer
	for _, lg := range block.Logs {
		if lg.Address != tracked {
			continue
		}
		if len(lg.Topics) != 4 || lg.Topics[0] != transferEventTopic {
			continue
		}
		log.Debug().Msgf("NFT transfer seen in %s", lg.TransactionHash)
		result = append(result, common.Transfer{
			TrxHash: lg.TransactionHash,
			From:    gethCommon.BytesToAddress(lg.Topics[1].Bytes()),
			To:      gethCommon.BytesToAddress(lg.Topics[2].Bytes()),
			// token ids wider than 64 bits keep only the low 64 bits, a
			// known lossy narrowing
			TokenId: binary.BigEndian.Uint64(lg.Topics[3][24:]),
			Ordinal: lg.LogIndex,
		})
		metrics.TransfersExtracted.Inc()
	}
	return result
}
