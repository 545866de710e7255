package transfers

import (
	"fmt"

	gethCommon "github.com/ethereum/go-ethereum/common"
	"github.com/thirdweb-dev/token-streams/internal/common"
	"github.com/thirdweb-dev/token-streams/internal/metrics"
	"github.com/thirdweb-dev/token-streams/internal/storage"
)

type delta struct {
	ordinal uint64
	key     string
	value   int64
}

// Apply records one block's balance deltas in the store: a debit for the
// sender and a credit for the receiver, skipping the null address on
// mints and burns. A two-party transfer produces two independent
// applications on two different keys, never a single net-zero no-op.
// The block's deltas are staged and validated in full before the first
// store mutation, so a malformed block leaves the ledger untouched.
func Apply(store storage.DeltaStore, tracked gethCommon.Address, transfers []common.Transfer) error {
	deltas := make([]delta, 0, len(transfers)*2)
	for _, transfer := range transfers {
		if transfer.From != common.NullAddress {
			deltas = append(deltas, delta{transfer.Ordinal, common.BalanceKey(transfer.From, tracked), -1})
		}
		if transfer.To != common.NullAddress {
			deltas = append(deltas, delta{transfer.Ordinal, common.BalanceKey(transfer.To, tracked), 1})
		}
	}

	lastOrdinal := make(map[string]uint64)
	for _, d := range deltas {
		if last, seen := lastOrdinal[d.key]; seen && d.ordinal < last {
			return fmt.Errorf("ordinal %d for key %s is behind ordinal %d in the same block", d.ordinal, d.key, last)
		}
		lastOrdinal[d.key] = d.ordinal
	}

	store.BeginBlock()
	for _, d := range deltas {
		if err := store.Add(d.ordinal, d.key, d.value); err != nil {
			return fmt.Errorf("error applying delta to %s: %v", d.key, err)
		}
		metrics.LedgerDeltasApplied.Inc()
	}
	return nil
}
