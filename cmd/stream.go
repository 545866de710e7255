package cmd

import (
	"context"
	"fmt"
	"math/big"
	"net/http"
	"time"

	gethCommon "github.com/ethereum/go-ethereum/common"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	config "github.com/thirdweb-dev/token-streams/configs"
	"github.com/thirdweb-dev/token-streams/internal/publisher"
	"github.com/thirdweb-dev/token-streams/internal/rpc"
	"github.com/thirdweb-dev/token-streams/internal/storage"
	"github.com/thirdweb-dev/token-streams/internal/tokens"
	"github.com/thirdweb-dev/token-streams/internal/worker"
)

var (
	streamCmd = &cobra.Command{
		Use:   "stream",
		Short: "Process blocks into the transfer and token streams",
		Long:  "Process blocks into the transfer and token streams",
		Run: func(cmd *cobra.Command, args []string) {
			RunStream(cmd, args)
		},
	}
)

func RunStream(cmd *cobra.Command, args []string) {
	rpcClient, err := rpc.Initialize()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize RPC")
	}
	defer rpcClient.Close()

	params, err := tokens.ParamsFromConfig(config.Cfg.Stream)
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid stream configuration")
	}

	store, err := storage.NewDeltaStore(&config.Cfg.Store)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize delta store")
	}
	defer store.Close()

	pub := publisher.GetInstance()
	defer pub.Close()

	if config.Cfg.Metrics.Enabled {
		go func() {
			http.Handle("/metrics", promhttp.Handler())
			if err := http.ListenAndServe(fmt.Sprintf(":%d", config.Cfg.Metrics.Port), nil); err != nil {
				log.Error().Err(err).Msg("Metrics server stopped")
			}
		}()
	}

	w := worker.NewWorker(tokens.NewDiscoverer(params, rpcClient), store, pub)
	runBlockLoop(context.Background(), rpcClient, w, params)
}

// runBlockLoop processes blocks strictly sequentially from fromBlock to
// untilBlock, or follows the chain head when untilBlock is zero.
func runBlockLoop(ctx context.Context, rpcClient *rpc.Client, w *worker.Worker, params tokens.Params) {
	interval := time.Duration(config.Cfg.Stream.PollInterval) * time.Millisecond
	logAddresses := []gethCommon.Address{params.TrackedContract}

	blockNumber := big.NewInt(config.Cfg.Stream.FromBlock)
	if config.Cfg.Stream.FromBlock <= 0 {
		latest, err := rpcClient.GetLatestBlockNumber(ctx)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to get latest block number")
		}
		blockNumber = latest
	}

	for {
		if config.Cfg.Stream.UntilBlock > 0 && blockNumber.Int64() > config.Cfg.Stream.UntilBlock {
			log.Info().Msgf("Reached until block %d, stopping", config.Cfg.Stream.UntilBlock)
			return
		}

		latest, err := rpcClient.GetLatestBlockNumber(ctx)
		if err != nil {
			log.Error().Err(err).Msg("Failed to get latest block number")
			time.Sleep(interval)
			continue
		}
		if blockNumber.Cmp(latest) > 0 {
			time.Sleep(interval)
			continue
		}

		block, err := rpcClient.GetBlockData(ctx, blockNumber, logAddresses)
		if err != nil {
			log.Error().Err(err).Msgf("Failed to fetch block %d", blockNumber)
			time.Sleep(interval)
			continue
		}

		if _, err := w.ProcessBlock(ctx, block); err != nil {
			log.Error().Err(err).Msgf("Failed to process block %d", blockNumber)
			time.Sleep(interval)
			continue
		}

		blockNumber = new(big.Int).Add(blockNumber, big.NewInt(1))
	}
}
