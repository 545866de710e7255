package transfers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thirdweb-dev/token-streams/internal/common"
	"github.com/thirdweb-dev/token-streams/internal/storage"
)

func TestApplyTwoPartyTransfer(t *testing.T) {
	store := storage.NewMemoryDeltaStore()
	transfer := common.Transfer{TrxHash: "0x1", From: holderOne, To: holderTwo, Ordinal: 1}

	err := Apply(store, trackedContract, []common.Transfer{transfer})
	require.NoError(t, err)

	// two independent applications on two different keys
	assert.Equal(t, int64(-1), store.Get(common.BalanceKey(holderOne, trackedContract)))
	assert.Equal(t, int64(1), store.Get(common.BalanceKey(holderTwo, trackedContract)))
	assert.Len(t, store.Keys(), 2)
}

func TestApplyMintSkipsDebit(t *testing.T) {
	store := storage.NewMemoryDeltaStore()
	mint := common.Transfer{TrxHash: "0x1", From: common.NullAddress, To: holderOne, Ordinal: 1}

	err := Apply(store, trackedContract, []common.Transfer{mint})
	require.NoError(t, err)

	assert.Equal(t, int64(1), store.Get(common.BalanceKey(holderOne, trackedContract)))
	assert.Len(t, store.Keys(), 1)
}

func TestApplyBurnSkipsCredit(t *testing.T) {
	store := storage.NewMemoryDeltaStore()
	burn := common.Transfer{TrxHash: "0x1", From: holderOne, To: common.NullAddress, Ordinal: 1}

	err := Apply(store, trackedContract, []common.Transfer{burn})
	require.NoError(t, err)

	assert.Equal(t, int64(-1), store.Get(common.BalanceKey(holderOne, trackedContract)))
	assert.Len(t, store.Keys(), 1)
}

func TestApplyNetsOutRoundTrip(t *testing.T) {
	store := storage.NewMemoryDeltaStore()
	transfers := []common.Transfer{
		{TrxHash: "0x1", From: common.NullAddress, To: holderOne, Ordinal: 0},
		{TrxHash: "0x2", From: holderOne, To: holderTwo, Ordinal: 1},
		{TrxHash: "0x3", From: holderTwo, To: holderOne, Ordinal: 2},
	}

	err := Apply(store, trackedContract, transfers)
	require.NoError(t, err)

	assert.Equal(t, int64(1), store.Get(common.BalanceKey(holderOne, trackedContract)))
	assert.Equal(t, int64(0), store.Get(common.BalanceKey(holderTwo, trackedContract)))
}

func TestApplyOrdinalsRestartAcrossBlocks(t *testing.T) {
	// log indices restart from zero at every block, so a holder active
	// late in one block and early in the next is ordinary traffic
	store := storage.NewMemoryDeltaStore()

	blockN := []common.Transfer{
		{TrxHash: "0x1", From: common.NullAddress, To: holderOne, Ordinal: 10},
	}
	require.NoError(t, Apply(store, trackedContract, blockN))

	blockNPlusOne := []common.Transfer{
		{TrxHash: "0x2", From: holderOne, To: holderTwo, Ordinal: 3},
	}
	require.NoError(t, Apply(store, trackedContract, blockNPlusOne))

	assert.Equal(t, int64(0), store.Get(common.BalanceKey(holderOne, trackedContract)))
	assert.Equal(t, int64(1), store.Get(common.BalanceKey(holderTwo, trackedContract)))
}

func TestApplyRejectsOrdinalRegressionWithinBlock(t *testing.T) {
	store := storage.NewMemoryDeltaStore()
	transfers := []common.Transfer{
		{TrxHash: "0x1", From: holderOne, To: holderTwo, Ordinal: 5},
		// same sender again with a lower ordinal violates the per-key
		// ordering contract inside one block
		{TrxHash: "0x2", From: holderOne, To: holderTwo, Ordinal: 3},
	}

	err := Apply(store, trackedContract, transfers)
	assert.Error(t, err)
	// the whole block is staged before the first mutation, so a
	// malformed block leaves the ledger untouched
	assert.Empty(t, store.Keys())
}

func TestBalanceKeyIsDeterministic(t *testing.T) {
	key := common.BalanceKey(holderOne, trackedContract)
	assert.Equal(t, "total:aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa:bc4ca0eda7647a8ab7c2061c2e118a18a936f13d", key)
	assert.Equal(t, key, common.BalanceKey(holderOne, trackedContract))
}
