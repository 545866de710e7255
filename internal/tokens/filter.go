package tokens

import (
	"bytes"
	"fmt"

	gethCommon "github.com/ethereum/go-ethereum/common"
	"github.com/rs/zerolog/log"
	"github.com/thirdweb-dev/token-streams/internal/common"
	"github.com/thirdweb-dev/token-streams/internal/metrics"
)

// Candidate is a call tentatively identified as creating or initializing
// a token contract, pending eth_call verification.
type Candidate struct {
	Address gethCommon.Address
	Caller  gethCommon.Address
	Kind    common.CallType
	TrxHash string
}

// classifyStage inspects one filtered call and returns a non-empty reason
// to reject it. Stages run in order and short-circuit on the first
// rejection.
type classifyStage func(p Params, call common.Call) string

var classifyStages = []classifyStage{
	rejectSmallCreations,
	rejectKnownFactories,
}

// rejectSmallCreations discards creation calls whose installed code is
// too small to plausibly implement a token standard. Initialization
// calls are exempt, the code at the target already passed this bar when
// it was deployed.
func rejectSmallCreations(p Params, call common.Call) string {
	if call.Type != common.CallTypeCreate {
		return ""
	}
	var codeLen uint64
	for _, change := range call.CodeChanges {
		codeLen += change.NewCodeLength
	}
	if codeLen <= p.MinCodeSize {
		return fmt.Sprintf("deployed code too small (%d bytes)", codeLen)
	}
	return ""
}

// rejectKnownFactories discards calls made by well-known deployment
// factories unrelated to token creation.
func rejectKnownFactories(p Params, call common.Call) string {
	for _, excluded := range p.ExcludedCallers {
		if call.Caller == excluded {
			return "known factory caller"
		}
	}
	return ""
}

// filterCandidates walks the block's call trees and returns the calls
// that plausibly create or initialize a token contract: non-reverted
// creations, and message calls entering the deferred-initialization
// entry point of the proxy pattern.
func filterCandidates(p Params, block common.BlockData) []Candidate {
	var candidates []Candidate
	for _, trx := range block.Transactions {
		for _, call := range trx.Calls {
			if call.Reverted {
				continue
			}
			switch call.Type {
			case common.CallTypeCreate:
			case common.CallTypeCall:
				if len(call.Input) < 4 || !bytes.Equal(call.Input[:4], p.InitializeSelector[:]) {
					continue
				}
			default:
				continue
			}
			metrics.CandidatesSeen.Inc()

			if reason := classify(p, call); reason != "" {
				log.Debug().Msgf("Skipping candidate %s: %s", call.Address.Hex(), reason)
				metrics.CandidatesRejected.Inc()
				continue
			}

			candidates = append(candidates, Candidate{
				Address: call.Address,
				Caller:  call.Caller,
				Kind:    call.Type,
				TrxHash: trx.Hash,
			})
		}
	}
	return candidates
}

func classify(p Params, call common.Call) string {
	for _, stage := range classifyStages {
		if reason := stage(p, call); reason != "" {
			return reason
		}
	}
	return ""
}
