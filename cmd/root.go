package cmd

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	configs "github.com/thirdweb-dev/token-streams/configs"
	customLogger "github.com/thirdweb-dev/token-streams/internal/log"
)

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   "token-streams",
		Short: "Streams NFT transfers and newly deployed token contracts per block",
		Long:  "Streams NFT transfers and newly deployed token contracts per block",
		Run: func(cmd *cobra.Command, args []string) {
			RunStream(cmd, args)
		},
	}
)

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./configs/config.yml)")
	rootCmd.PersistentFlags().String("rpc-url", "", "RPC Url to use for the streamer")
	rootCmd.PersistentFlags().String("log-level", "", "Log level to use for the application")
	rootCmd.PersistentFlags().Bool("log-prettify", false, "Whether to prettify the log output")
	rootCmd.PersistentFlags().String("stream-tracked-contract", "", "NFT contract address to track transfers for")
	rootCmd.PersistentFlags().Int64("stream-from-block", 0, "From which block to start streaming")
	rootCmd.PersistentFlags().Int64("stream-until-block", 0, "Until which block to stream (0 follows the chain head)")
	rootCmd.PersistentFlags().Int("stream-poll-interval", 1000, "How often to poll for new blocks in milliseconds")
	rootCmd.PersistentFlags().Uint64("stream-min-code-size", 150, "Minimum deployed code size in bytes for a creation to stay a candidate")
	rootCmd.PersistentFlags().String("store-redis-addr", "", "Redis address for the balance ledger store")
	rootCmd.PersistentFlags().String("store-redis-password", "", "Redis password for the balance ledger store")
	rootCmd.PersistentFlags().Bool("publisher-enabled", false, "Toggle Kafka publisher")
	rootCmd.PersistentFlags().String("publisher-brokers", "", "Kafka brokers for the publisher")
	rootCmd.PersistentFlags().Bool("metrics-enabled", false, "Toggle metrics server")
	rootCmd.PersistentFlags().Int("metrics-port", 2112, "Port for the metrics server")
	viper.BindPFlag("rpc.url", rootCmd.PersistentFlags().Lookup("rpc-url"))
	viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("log.prettify", rootCmd.PersistentFlags().Lookup("log-prettify"))
	viper.BindPFlag("stream.trackedContract", rootCmd.PersistentFlags().Lookup("stream-tracked-contract"))
	viper.BindPFlag("stream.fromBlock", rootCmd.PersistentFlags().Lookup("stream-from-block"))
	viper.BindPFlag("stream.untilBlock", rootCmd.PersistentFlags().Lookup("stream-until-block"))
	viper.BindPFlag("stream.pollInterval", rootCmd.PersistentFlags().Lookup("stream-poll-interval"))
	viper.BindPFlag("stream.minCodeSize", rootCmd.PersistentFlags().Lookup("stream-min-code-size"))
	viper.BindPFlag("store.redis.addr", rootCmd.PersistentFlags().Lookup("store-redis-addr"))
	viper.BindPFlag("store.redis.password", rootCmd.PersistentFlags().Lookup("store-redis-password"))
	viper.BindPFlag("publisher.enabled", rootCmd.PersistentFlags().Lookup("publisher-enabled"))
	viper.BindPFlag("publisher.brokers", rootCmd.PersistentFlags().Lookup("publisher-brokers"))
	viper.BindPFlag("metrics.enabled", rootCmd.PersistentFlags().Lookup("metrics-enabled"))
	viper.BindPFlag("metrics.port", rootCmd.PersistentFlags().Lookup("metrics-port"))
	rootCmd.AddCommand(streamCmd)
}

func initConfig() {
	configs.LoadConfig(cfgFile)
	customLogger.InitLogger()
}
