package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type LogConfig struct {
	Level    string `mapstructure:"level"`
	Prettify bool   `mapstructure:"prettify"`
}

type RPCConfig struct {
	URL     string `mapstructure:"url"`
	ChainID string `mapstructure:"chainId"`
}

// StreamConfig carries the fixed constants of the pipeline contract. They
// are configuration rather than scattered literals so tests can substitute
// alternate values.
type StreamConfig struct {
	TrackedContract    string   `mapstructure:"trackedContract"`
	InitializeSelector string   `mapstructure:"initializeSelector"`
	ExcludedCallers    []string `mapstructure:"excludedCallers"`
	MinCodeSize        uint64   `mapstructure:"minCodeSize"`
	DecimalsSelector   string   `mapstructure:"decimalsSelector"`
	NameSelector       string   `mapstructure:"nameSelector"`
	SymbolSelector     string   `mapstructure:"symbolSelector"`
	FromBlock          int64    `mapstructure:"fromBlock"`
	UntilBlock         int64    `mapstructure:"untilBlock"`
	PollInterval       int      `mapstructure:"pollInterval"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	PoolSize int    `mapstructure:"poolSize"`
}

type StoreConfig struct {
	Redis *RedisConfig `mapstructure:"redis"`
}

type TopicConfig struct {
	TopicName string `mapstructure:"topicName"`
}

type PublisherConfig struct {
	Enabled   bool        `mapstructure:"enabled"`
	Brokers   string      `mapstructure:"brokers"`
	Username  string      `mapstructure:"username"`
	Password  string      `mapstructure:"password"`
	Transfers TopicConfig `mapstructure:"transfers"`
	Tokens    TopicConfig `mapstructure:"tokens"`
}

type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`
	Port    int  `mapstructure:"port"`
}

type Config struct {
	RPC       RPCConfig       `mapstructure:"rpc"`
	Log       LogConfig       `mapstructure:"log"`
	Stream    StreamConfig    `mapstructure:"stream"`
	Store     StoreConfig     `mapstructure:"store"`
	Publisher PublisherConfig `mapstructure:"publisher"`
	Metrics   MetricsConfig   `mapstructure:"metrics"`
}

var Cfg Config

func setDefaults() {
	// Bored Ape Yacht Club
	viper.SetDefault("stream.trackedContract", "0xbc4ca0eda7647a8ab7c2061c2e118a18a936f13d")
	// initialize() entry point of the OpenZeppelin proxy pattern
	viper.SetDefault("stream.initializeSelector", "0x1459457a")
	viper.SetDefault("stream.excludedCallers", []string{
		"0x0000000000004946c0e9f43f4dee607b0ef1fa1c",
		"0x00000000687f5b66638856396bee28c1db0178d1",
	})
	viper.SetDefault("stream.minCodeSize", 150)
	viper.SetDefault("stream.decimalsSelector", "0x313ce567")
	viper.SetDefault("stream.nameSelector", "0x06fdde03")
	viper.SetDefault("stream.symbolSelector", "0x95d89b41")
	viper.SetDefault("stream.pollInterval", 1000)
	viper.SetDefault("metrics.port", 2112)
}

func LoadConfig(cfgFile string) error {
	setDefaults()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
		if err := viper.ReadInConfig(); err != nil {
			return fmt.Errorf("error reading config file, %s", err)
		}
	} else {
		viper.SetConfigName("config")
		viper.AddConfigPath("./configs")
		if err := viper.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return fmt.Errorf("error reading config file, %s", err)
			}
		}
	}

	// sets e.g. RPC_URL to rpc.url
	replacer := strings.NewReplacer(".", "_")
	viper.SetEnvKeyReplacer(replacer)

	viper.AutomaticEnv()

	err := viper.Unmarshal(&Cfg)
	if err != nil {
		return fmt.Errorf("error unmarshalling config: %v", err)
	}
	return nil
}
