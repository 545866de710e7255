package rpc

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/ethclient"
	gethRpc "github.com/ethereum/go-ethereum/rpc"
	"github.com/rs/zerolog/log"
	config "github.com/thirdweb-dev/token-streams/configs"
)

type Client struct {
	RPCClient *gethRpc.Client
	EthClient *ethclient.Client
	url       string
	chainID   *big.Int
}

func Initialize() (*Client, error) {
	rpcUrl := config.Cfg.RPC.URL
	if rpcUrl == "" {
		return nil, fmt.Errorf("RPC_URL environment variable is not set")
	}
	return NewClient(rpcUrl)
}

func NewClient(url string) (*Client, error) {
	log.Debug().Msg("Initializing RPC")
	rpcClient, dialErr := gethRpc.Dial(url)
	if dialErr != nil {
		return nil, dialErr
	}

	ethClient := ethclient.NewClient(rpcClient)
	rpc := &Client{
		RPCClient: rpcClient,
		EthClient: ethClient,
		url:       url,
	}

	if err := rpc.setChainID(context.Background()); err != nil {
		rpc.Close()
		return nil, err
	}
	return rpc, nil
}

func (rpc *Client) GetChainID() *big.Int {
	return rpc.chainID
}

func (rpc *Client) GetURL() string {
	return rpc.url
}

func (rpc *Client) Close() {
	rpc.RPCClient.Close()
	rpc.EthClient.Close()
}

func (rpc *Client) setChainID(ctx context.Context) error {
	chainID, err := rpc.EthClient.ChainID(ctx)
	if err != nil {
		return fmt.Errorf("failed to get chain ID: %v", err)
	}
	rpc.chainID = chainID
	config.Cfg.RPC.ChainID = chainID.String()
	return nil
}

func (rpc *Client) GetLatestBlockNumber(ctx context.Context) (*big.Int, error) {
	blockNumber, err := rpc.EthClient.BlockNumber(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get latest block number: %v", err)
	}
	return new(big.Int).SetUint64(blockNumber), nil
}
