package tokens

import (
	"testing"

	gethCommon "github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	config "github.com/thirdweb-dev/token-streams/configs"
	"github.com/thirdweb-dev/token-streams/internal/common"
)

func testParams() Params {
	return Params{
		TrackedContract:    gethCommon.HexToAddress("0xbc4ca0eda7647a8ab7c2061c2e118a18a936f13d"),
		InitializeSelector: [4]byte{0x14, 0x59, 0x45, 0x7a},
		ExcludedCallers: []gethCommon.Address{
			gethCommon.HexToAddress("0x0000000000004946c0e9f43f4dee607b0ef1fa1c"),
			gethCommon.HexToAddress("0x00000000687f5b66638856396bee28c1db0178d1"),
		},
		MinCodeSize:      150,
		DecimalsSelector: [4]byte{0x31, 0x3c, 0xe5, 0x67},
		NameSelector:     [4]byte{0x06, 0xfd, 0xde, 0x03},
		SymbolSelector:   [4]byte{0x95, 0xd8, 0x9b, 0x41},
	}
}

func blockWithCalls(calls ...common.Call) common.BlockData {
	return common.BlockData{
		Transactions: []common.Transaction{
			{Hash: "0xabc", Calls: calls},
		},
	}
}

func creationCall(codeLen uint64) common.Call {
	return common.Call{
		Type:        common.CallTypeCreate,
		Caller:      gethCommon.HexToAddress("0x1111111111111111111111111111111111111111"),
		Address:     gethCommon.HexToAddress("0x2222222222222222222222222222222222222222"),
		CodeChanges: []common.CodeChange{{NewCodeLength: codeLen}},
	}
}

func TestFilterSkipsRevertedCalls(t *testing.T) {
	call := creationCall(500)
	call.Reverted = true

	candidates := filterCandidates(testParams(), blockWithCalls(call))
	assert.Empty(t, candidates)
}

func TestFilterRetainsCreations(t *testing.T) {
	candidates := filterCandidates(testParams(), blockWithCalls(creationCall(500)))
	require.Len(t, candidates, 1)
	assert.Equal(t, common.CallTypeCreate, candidates[0].Kind)
	assert.Equal(t, "0xabc", candidates[0].TrxHash)
	assert.Equal(t, gethCommon.HexToAddress("0x2222222222222222222222222222222222222222"), candidates[0].Address)
}

func TestFilterCodeSizeBoundary(t *testing.T) {
	// boundary is exclusive at <=150
	candidates := filterCandidates(testParams(), blockWithCalls(creationCall(150)))
	assert.Empty(t, candidates)

	candidates = filterCandidates(testParams(), blockWithCalls(creationCall(151)))
	assert.Len(t, candidates, 1)
}

func TestFilterSumsCodeChanges(t *testing.T) {
	call := creationCall(0)
	call.CodeChanges = []common.CodeChange{{NewCodeLength: 100}, {NewCodeLength: 51}}

	candidates := filterCandidates(testParams(), blockWithCalls(call))
	assert.Len(t, candidates, 1)
}

func TestFilterRetainsProxyInitializations(t *testing.T) {
	call := common.Call{
		Type:    common.CallTypeCall,
		Caller:  gethCommon.HexToAddress("0x1111111111111111111111111111111111111111"),
		Address: gethCommon.HexToAddress("0x3333333333333333333333333333333333333333"),
		Input:   []byte{0x14, 0x59, 0x45, 0x7a, 0x00, 0x01},
	}

	candidates := filterCandidates(testParams(), blockWithCalls(call))
	require.Len(t, candidates, 1)
	assert.Equal(t, common.CallTypeCall, candidates[0].Kind)
}

func TestFilterIgnoresNonInitializeSelectors(t *testing.T) {
	call := common.Call{
		Type:    common.CallTypeCall,
		Caller:  gethCommon.HexToAddress("0x1111111111111111111111111111111111111111"),
		Address: gethCommon.HexToAddress("0x3333333333333333333333333333333333333333"),
		Input:   []byte{0xa9, 0x05, 0x9c, 0xbb, 0x00, 0x01},
	}

	candidates := filterCandidates(testParams(), blockWithCalls(call))
	assert.Empty(t, candidates)
}

func TestFilterIgnoresShortInput(t *testing.T) {
	// fewer than 4 input bytes is a non-match, not an error
	call := common.Call{
		Type:    common.CallTypeCall,
		Caller:  gethCommon.HexToAddress("0x1111111111111111111111111111111111111111"),
		Address: gethCommon.HexToAddress("0x3333333333333333333333333333333333333333"),
		Input:   []byte{0x14, 0x59},
	}

	candidates := filterCandidates(testParams(), blockWithCalls(call))
	assert.Empty(t, candidates)
}

func TestFilterIgnoresOtherCallTypes(t *testing.T) {
	call := common.Call{
		Type:  common.CallTypeOther,
		Input: []byte{0x14, 0x59, 0x45, 0x7a},
	}

	candidates := filterCandidates(testParams(), blockWithCalls(call))
	assert.Empty(t, candidates)
}

func TestFilterExcludesKnownFactoryCallers(t *testing.T) {
	for _, factory := range testParams().ExcludedCallers {
		call := creationCall(500)
		call.Caller = factory

		candidates := filterCandidates(testParams(), blockWithCalls(call))
		assert.Empty(t, candidates)
	}
}

func TestFilterExcludesFactoryInitializations(t *testing.T) {
	call := common.Call{
		Type:    common.CallTypeCall,
		Caller:  gethCommon.HexToAddress("0x0000000000004946c0e9f43f4dee607b0ef1fa1c"),
		Address: gethCommon.HexToAddress("0x3333333333333333333333333333333333333333"),
		Input:   []byte{0x14, 0x59, 0x45, 0x7a},
	}

	candidates := filterCandidates(testParams(), blockWithCalls(call))
	assert.Empty(t, candidates)
}

func TestParamsFromConfig(t *testing.T) {
	cfg := config.StreamConfig{
		TrackedContract:    "0xbc4ca0eda7647a8ab7c2061c2e118a18a936f13d",
		InitializeSelector: "0x1459457a",
		ExcludedCallers:    []string{"0x0000000000004946c0e9f43f4dee607b0ef1fa1c"},
		MinCodeSize:        150,
		DecimalsSelector:   "0x313ce567",
		NameSelector:       "0x06fdde03",
		SymbolSelector:     "0x95d89b41",
	}

	params, err := ParamsFromConfig(cfg)
	require.NoError(t, err)
	assert.Equal(t, gethCommon.HexToAddress(cfg.TrackedContract), params.TrackedContract)
	assert.Equal(t, [4]byte{0x14, 0x59, 0x45, 0x7a}, params.InitializeSelector)
	assert.Equal(t, uint64(150), params.MinCodeSize)
	assert.Len(t, params.ExcludedCallers, 1)
}

func TestParamsFromConfigRejectsBadSelector(t *testing.T) {
	cfg := config.StreamConfig{
		TrackedContract:    "0xbc4ca0eda7647a8ab7c2061c2e118a18a936f13d",
		InitializeSelector: "0x1459457a00", // 5 bytes
		DecimalsSelector:   "0x313ce567",
		NameSelector:       "0x06fdde03",
		SymbolSelector:     "0x95d89b41",
	}

	_, err := ParamsFromConfig(cfg)
	assert.Error(t, err)
}

func TestParamsFromConfigRejectsBadAddress(t *testing.T) {
	cfg := config.StreamConfig{
		TrackedContract:    "not-an-address",
		InitializeSelector: "0x1459457a",
		DecimalsSelector:   "0x313ce567",
		NameSelector:       "0x06fdde03",
		SymbolSelector:     "0x95d89b41",
	}

	_, err := ParamsFromConfig(cfg)
	assert.Error(t, err)
}
