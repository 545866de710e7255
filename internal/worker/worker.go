package worker

import (
	"context"
	"fmt"
	"math/big"

	"github.com/rs/zerolog/log"
	"github.com/thirdweb-dev/token-streams/internal/common"
	"github.com/thirdweb-dev/token-streams/internal/metrics"
	"github.com/thirdweb-dev/token-streams/internal/publisher"
	"github.com/thirdweb-dev/token-streams/internal/storage"
	"github.com/thirdweb-dev/token-streams/internal/tokens"
	"github.com/thirdweb-dev/token-streams/internal/transfers"
)

// Worker turns one block into the two output streams. Processing is a
// pure function of the block's data plus the results of strictly
// synchronous read-only calls: no background goroutines, no callbacks.
type Worker struct {
	discoverer *tokens.Discoverer
	store      storage.DeltaStore
	publisher  *publisher.Publisher
}

type BlockResult struct {
	BlockNumber *big.Int
	Transfers   []common.Transfer
	Tokens      []common.Token
}

func NewWorker(discoverer *tokens.Discoverer, store storage.DeltaStore, publisher *publisher.Publisher) *Worker {
	return &Worker{
		discoverer: discoverer,
		store:      store,
		publisher:  publisher,
	}
}

// ProcessBlock extracts transfers, runs token discovery, publishes both
// streams and finally applies the ledger deltas. Candidate-level
// failures inside discovery never surface here; any returned error is
// structural and aborts the block. The ledger commit comes last so a
// structural failure leaves the store untouched and retrying the block
// applies each delta exactly once.
func (w *Worker) ProcessBlock(ctx context.Context, block common.BlockData) (BlockResult, error) {
	result := BlockResult{BlockNumber: block.Number}

	result.Transfers = transfers.Extract(w.discoverer.Params().TrackedContract, block)

	discovered, err := w.discoverer.Discover(ctx, block)
	if err != nil {
		return result, fmt.Errorf("error discovering tokens for block %d: %v", block.Number, err)
	}
	result.Tokens = discovered

	if w.publisher != nil {
		if err := w.publisher.PublishBlockStreams(block.ChainId, result.Transfers, result.Tokens); err != nil {
			return result, fmt.Errorf("error publishing streams for block %d: %v", block.Number, err)
		}
	}

	if err := transfers.Apply(w.store, w.discoverer.Params().TrackedContract, result.Transfers); err != nil {
		return result, fmt.Errorf("error applying transfers for block %d: %v", block.Number, err)
	}

	metrics.LastProcessedBlock.Set(float64(block.Number.Int64()))
	log.Debug().Msgf("Processed block %d: %d transfers, %d tokens", block.Number, len(result.Transfers), len(result.Tokens))
	return result, nil
}
