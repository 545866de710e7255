package rpc

import (
	"context"
	"fmt"
	"math/big"
	"time"

	gethCommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	gethRpc "github.com/ethereum/go-ethereum/rpc"
	"github.com/thirdweb-dev/token-streams/internal/metrics"
)

// CallResult is the outcome of one read-only call. When Failed is set,
// Raw holds the failure reason as reported by the node and must not be
// passed to a decoder.
type CallResult struct {
	Failed bool
	Raw    []byte
}

// ContractCaller executes a batch of read-only calls against one target
// address at a given block. It returns exactly one result per calldata in
// request order. A returned error is structural (transport or malformed
// response) and fails the whole block; per-call failures are reported in
// the results.
type ContractCaller interface {
	EthCallBatch(ctx context.Context, blockNumber *big.Int, to gethCommon.Address, calldata [][]byte) ([]CallResult, error)
}

func (rpc *Client) EthCallBatch(ctx context.Context, blockNumber *big.Int, to gethCommon.Address, calldata [][]byte) ([]CallResult, error) {
	batch := make([]gethRpc.BatchElem, len(calldata))
	for i, data := range calldata {
		batch[i] = gethRpc.BatchElem{
			Method: "eth_call",
			Args: []interface{}{
				map[string]string{"to": to.Hex(), "data": hexutil.Encode(data)},
				hexutil.EncodeBig(blockNumber),
			},
			Result: new(hexutil.Bytes),
		}
	}

	start := time.Now()
	if err := rpc.RPCClient.BatchCallContext(ctx, batch); err != nil {
		return nil, fmt.Errorf("eth_call batch of %d against %s failed: %v", len(calldata), to.Hex(), err)
	}
	metrics.EthCallBatchDuration.Observe(time.Since(start).Seconds())

	results := make([]CallResult, len(batch))
	for i, elem := range batch {
		if elem.Error != nil {
			results[i] = CallResult{Failed: true, Raw: []byte(elem.Error.Error())}
			continue
		}
		results[i] = CallResult{Raw: *elem.Result.(*hexutil.Bytes)}
	}
	return results, nil
}
