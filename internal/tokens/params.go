package tokens

import (
	"fmt"

	gethCommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	config "github.com/thirdweb-dev/token-streams/configs"
)

// Params are the fixed constants of the discovery contract, parsed once
// at startup from configuration.
type Params struct {
	TrackedContract    gethCommon.Address
	InitializeSelector [4]byte
	ExcludedCallers    []gethCommon.Address
	MinCodeSize        uint64
	DecimalsSelector   [4]byte
	NameSelector       [4]byte
	SymbolSelector     [4]byte
}

func ParamsFromConfig(cfg config.StreamConfig) (Params, error) {
	if !gethCommon.IsHexAddress(cfg.TrackedContract) {
		return Params{}, fmt.Errorf("invalid tracked contract address %q", cfg.TrackedContract)
	}
	p := Params{
		TrackedContract: gethCommon.HexToAddress(cfg.TrackedContract),
		MinCodeSize:     cfg.MinCodeSize,
	}

	var err error
	if p.InitializeSelector, err = parseSelector(cfg.InitializeSelector); err != nil {
		return Params{}, err
	}
	if p.DecimalsSelector, err = parseSelector(cfg.DecimalsSelector); err != nil {
		return Params{}, err
	}
	if p.NameSelector, err = parseSelector(cfg.NameSelector); err != nil {
		return Params{}, err
	}
	if p.SymbolSelector, err = parseSelector(cfg.SymbolSelector); err != nil {
		return Params{}, err
	}

	for _, caller := range cfg.ExcludedCallers {
		if !gethCommon.IsHexAddress(caller) {
			return Params{}, fmt.Errorf("invalid excluded caller address %q", caller)
		}
		p.ExcludedCallers = append(p.ExcludedCallers, gethCommon.HexToAddress(caller))
	}
	return p, nil
}

func parseSelector(s string) ([4]byte, error) {
	raw, err := hexutil.Decode(s)
	if err != nil {
		return [4]byte{}, fmt.Errorf("invalid method selector %q: %v", s, err)
	}
	if len(raw) != 4 {
		return [4]byte{}, fmt.Errorf("method selector %q must be 4 bytes", s)
	}
	var selector [4]byte
	copy(selector[:], raw)
	return selector, nil
}
