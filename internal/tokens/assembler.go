package tokens

import (
	"context"
	"fmt"
	"math/big"

	gethCommon "github.com/ethereum/go-ethereum/common"
	"github.com/rs/zerolog/log"
	"github.com/thirdweb-dev/token-streams/internal/abi"
	"github.com/thirdweb-dev/token-streams/internal/common"
)

// verify confirms a candidate as a token contract through staged
// read-only calls: a single decimals probe first, then a name+symbol
// batch only if the probe succeeds. Any call or decode failure abandons
// the candidate; abandonment is diagnostic-only and never fails the
// block. A transport error or a short batch response is structural and
// does fail the block.
func (d *Discoverer) verify(ctx context.Context, blockNumber *big.Int, c Candidate) (common.Token, bool, error) {
	probe, err := d.caller.EthCallBatch(ctx, blockNumber, c.Address, [][]byte{d.params.DecimalsSelector[:]})
	if err != nil {
		return common.Token{}, false, err
	}
	if len(probe) != 1 {
		return common.Token{}, false, fmt.Errorf("decimals batch for %s returned %d results, want 1", c.Address.Hex(), len(probe))
	}
	if probe[0].Failed {
		log.Debug().Msgf("%s is not a token contract, decimals call failed: %s", c.Address.Hex(), string(probe[0].Raw))
		return common.Token{}, false, nil
	}
	decimals, err := abi.ReadUint32(probe[0].Raw)
	if err != nil {
		log.Debug().Msgf("%s is not a token contract, decimals decode failed: %v", c.Address.Hex(), err)
		return common.Token{}, false, nil
	}

	results, err := d.caller.EthCallBatch(ctx, blockNumber, c.Address, [][]byte{d.params.NameSelector[:], d.params.SymbolSelector[:]})
	if err != nil {
		return common.Token{}, false, err
	}
	if len(results) != 2 {
		return common.Token{}, false, fmt.Errorf("name/symbol batch for %s returned %d results, want 2", c.Address.Hex(), len(results))
	}
	if results[0].Failed || results[1].Failed {
		log.Debug().Msgf("%s is not a token contract, calls failed [name: %s, symbol: %s]",
			c.Address.Hex(), string(results[0].Raw), string(results[1].Raw))
		return common.Token{}, false, nil
	}

	// results come back in request order: name first, then symbol
	name, err := abi.ReadString(results[0].Raw)
	if err != nil {
		log.Debug().Msgf("%s is not a token contract, name decode failed: %v", c.Address.Hex(), err)
		return common.Token{}, false, nil
	}
	symbol, err := abi.ReadString(results[1].Raw)
	if err != nil {
		log.Debug().Msgf("%s is not a token contract, symbol decode failed: %v", c.Address.Hex(), err)
		return common.Token{}, false, nil
	}

	log.Debug().Msgf("%s is a token contract with name %s", c.Address.Hex(), name)
	return common.Token{
		Address:  gethCommon.Bytes2Hex(c.Address.Bytes()),
		Name:     name,
		Symbol:   symbol,
		Decimals: uint64(decimals),
	}, true, nil
}
