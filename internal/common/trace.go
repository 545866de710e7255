package common

import (
	gethCommon "github.com/ethereum/go-ethereum/common"
)

type CallType string

const (
	CallTypeCreate CallType = "create"
	CallTypeCall   CallType = "call"
	CallTypeOther  CallType = "other"
)

// CodeChange records code newly installed at an address during a call.
// Only the length matters to the pipeline.
type CodeChange struct {
	NewCodeLength uint64 `json:"new_code_length"`
}

// Call is one execution call within a transaction's call tree, flattened.
// It is a read-only view into the host-provided block.
type Call struct {
	Type        CallType           `json:"type"`
	Reverted    bool               `json:"reverted"`
	Caller      gethCommon.Address `json:"caller"`
	Address     gethCommon.Address `json:"address"`
	Input       []byte             `json:"input"`
	CodeChanges []CodeChange       `json:"code_changes"`
}

type Transaction struct {
	Hash  string `json:"hash"`
	Calls []Call `json:"calls"`
}
