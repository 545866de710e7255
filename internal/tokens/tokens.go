// Package tokens discovers newly deployed fungible-token contracts in a
// block's call traces and confirms them via read-only contract calls.
package tokens

import (
	"context"
	"fmt"

	"github.com/thirdweb-dev/token-streams/internal/common"
	"github.com/thirdweb-dev/token-streams/internal/metrics"
	"github.com/thirdweb-dev/token-streams/internal/rpc"
)

type Discoverer struct {
	params Params
	caller rpc.ContractCaller
}

func NewDiscoverer(params Params, caller rpc.ContractCaller) *Discoverer {
	return &Discoverer{
		params: params,
		caller: caller,
	}
}

func (d *Discoverer) Params() Params {
	return d.params
}

// Discover returns the verified token contracts deployed or initialized
// in the block. Candidates are verified strictly sequentially so the
// eth_call volume stays bounded and the call order reproducible.
func (d *Discoverer) Discover(ctx context.Context, block common.BlockData) ([]common.Token, error) {
	var tokens []common.Token
	for _, candidate := range filterCandidates(d.params, block) {
		token, ok, err := d.verify(ctx, block.Number, candidate)
		if err != nil {
			return nil, fmt.Errorf("error verifying candidate %s in block %d: %v", candidate.Address.Hex(), block.Number, err)
		}
		if !ok {
			metrics.CandidatesAbandoned.Inc()
			continue
		}
		tokens = append(tokens, token)
		metrics.TokensDiscovered.Inc()
	}
	return tokens, nil
}
