package rpc

import (
	"context"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum"
	gethCommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/rs/zerolog/log"
	"github.com/thirdweb-dev/token-streams/internal/common"
)

type traceBlockEntry struct {
	TxHash string     `json:"txHash"`
	Result *callFrame `json:"result"`
	Error  string     `json:"error"`
}

type callFrame struct {
	Type   string             `json:"type"`
	From   gethCommon.Address `json:"from"`
	To     gethCommon.Address `json:"to"`
	Input  hexutil.Bytes      `json:"input"`
	Output hexutil.Bytes      `json:"output"`
	Error  string             `json:"error"`
	Calls  []callFrame        `json:"calls"`
}

// GetBlockData assembles one block's pipeline input: the header, the log
// events for the given address filter and the flattened call trees of
// every transaction. Malformed trace data is a fatal error for the block,
// there is no partial result.
func (rpc *Client) GetBlockData(ctx context.Context, blockNumber *big.Int, logAddresses []gethCommon.Address) (common.BlockData, error) {
	header, err := rpc.EthClient.HeaderByNumber(ctx, blockNumber)
	if err != nil {
		return common.BlockData{}, fmt.Errorf("error fetching block %d: %v", blockNumber, err)
	}

	logs, err := rpc.EthClient.FilterLogs(ctx, ethereum.FilterQuery{
		FromBlock: blockNumber,
		ToBlock:   blockNumber,
		Addresses: logAddresses,
	})
	if err != nil {
		return common.BlockData{}, fmt.Errorf("error fetching logs for block %d: %v", blockNumber, err)
	}

	var entries []traceBlockEntry
	err = rpc.RPCClient.CallContext(ctx, &entries, "debug_traceBlockByNumber", hexutil.EncodeBig(blockNumber), map[string]interface{}{"tracer": "callTracer"})
	if err != nil {
		return common.BlockData{}, fmt.Errorf("error fetching call traces for block %d: %v", blockNumber, err)
	}

	data := common.BlockData{
		ChainId:      rpc.chainID,
		Number:       new(big.Int).Set(blockNumber),
		Hash:         header.Hash().Hex(),
		Timestamp:    header.Time,
		Transactions: make([]common.Transaction, 0, len(entries)),
		Logs:         make([]common.Log, 0, len(logs)),
	}

	for _, l := range logs {
		data.Logs = append(data.Logs, common.Log{
			Address:         l.Address,
			Topics:          l.Topics,
			Data:            l.Data,
			LogIndex:        uint64(l.Index),
			TransactionHash: l.TxHash.Hex(),
		})
	}

	for _, entry := range entries {
		if entry.Result == nil {
			return common.BlockData{}, fmt.Errorf("nil call trace for transaction %s in block %d: %s", entry.TxHash, blockNumber, entry.Error)
		}
		trx := common.Transaction{Hash: entry.TxHash}
		trx.Calls = flattenCallFrame(*entry.Result, false, trx.Calls)
		data.Transactions = append(data.Transactions, trx)
	}

	log.Debug().Msgf("Fetched block %d with %d transactions and %d logs", blockNumber, len(data.Transactions), len(data.Logs))
	return data, nil
}

// flattenCallFrame appends the frame and its children depth-first. A
// revert anywhere in a subtree marks every call under it as reverted.
func flattenCallFrame(frame callFrame, parentReverted bool, calls []common.Call) []common.Call {
	reverted := parentReverted || frame.Error != ""
	call := common.Call{
		Type:     callTypeOf(frame.Type),
		Reverted: reverted,
		Caller:   frame.From,
		Address:  frame.To,
		Input:    frame.Input,
	}
	if call.Type == common.CallTypeCreate && len(frame.Output) > 0 {
		// for creations the frame output is the installed runtime code
		call.CodeChanges = []common.CodeChange{{NewCodeLength: uint64(len(frame.Output))}}
	}
	calls = append(calls, call)
	for _, child := range frame.Calls {
		calls = flattenCallFrame(child, reverted, calls)
	}
	return calls
}

func callTypeOf(traceType string) common.CallType {
	switch strings.ToUpper(traceType) {
	case "CREATE", "CREATE2":
		return common.CallTypeCreate
	case "CALL", "CALLCODE", "DELEGATECALL":
		return common.CallTypeCall
	default:
		return common.CallTypeOther
	}
}
