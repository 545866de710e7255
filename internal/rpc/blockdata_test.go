package rpc

import (
	"testing"

	gethCommon "github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thirdweb-dev/token-streams/internal/common"
)

func TestFlattenCallFrameDepthFirst(t *testing.T) {
	frame := callFrame{
		Type: "CALL",
		From: gethCommon.HexToAddress("0x01"),
		To:   gethCommon.HexToAddress("0x02"),
		Calls: []callFrame{
			{Type: "CREATE", From: gethCommon.HexToAddress("0x02"), To: gethCommon.HexToAddress("0x03"), Output: make([]byte, 200)},
			{Type: "STATICCALL", From: gethCommon.HexToAddress("0x02"), To: gethCommon.HexToAddress("0x04")},
		},
	}

	calls := flattenCallFrame(frame, false, nil)
	require.Len(t, calls, 3)
	assert.Equal(t, common.CallTypeCall, calls[0].Type)
	assert.Equal(t, common.CallTypeCreate, calls[1].Type)
	assert.Equal(t, common.CallTypeOther, calls[2].Type)
}

func TestFlattenCallFrameCreationCodeLength(t *testing.T) {
	frame := callFrame{Type: "CREATE2", To: gethCommon.HexToAddress("0x03"), Output: make([]byte, 151)}

	calls := flattenCallFrame(frame, false, nil)
	require.Len(t, calls, 1)
	require.Len(t, calls[0].CodeChanges, 1)
	assert.Equal(t, uint64(151), calls[0].CodeChanges[0].NewCodeLength)
}

func TestFlattenCallFrameMessageCallHasNoCodeChanges(t *testing.T) {
	frame := callFrame{Type: "CALL", To: gethCommon.HexToAddress("0x03"), Output: make([]byte, 64)}

	calls := flattenCallFrame(frame, false, nil)
	require.Len(t, calls, 1)
	assert.Empty(t, calls[0].CodeChanges)
}

func TestFlattenCallFrameRevertPropagatesToChildren(t *testing.T) {
	frame := callFrame{
		Type:  "CALL",
		Error: "execution reverted",
		Calls: []callFrame{
			{Type: "CREATE", Output: make([]byte, 200)},
		},
	}

	calls := flattenCallFrame(frame, false, nil)
	require.Len(t, calls, 2)
	assert.True(t, calls[0].Reverted)
	assert.True(t, calls[1].Reverted)
}

func TestCallTypeOf(t *testing.T) {
	assert.Equal(t, common.CallTypeCreate, callTypeOf("CREATE"))
	assert.Equal(t, common.CallTypeCreate, callTypeOf("CREATE2"))
	assert.Equal(t, common.CallTypeCall, callTypeOf("CALL"))
	assert.Equal(t, common.CallTypeCall, callTypeOf("DELEGATECALL"))
	assert.Equal(t, common.CallTypeOther, callTypeOf("STATICCALL"))
	assert.Equal(t, common.CallTypeOther, callTypeOf("SELFDESTRUCT"))
}
