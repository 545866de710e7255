package publisher

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"math/big"
	"net"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	config "github.com/thirdweb-dev/token-streams/configs"
	"github.com/thirdweb-dev/token-streams/internal/common"
	"github.com/thirdweb-dev/token-streams/internal/metrics"
	"github.com/twmb/franz-go/pkg/kgo"
	"github.com/twmb/franz-go/pkg/sasl/plain"
)

// Publisher emits the per-block output streams to Kafka. With no brokers
// configured it is a no-op, the streams then exist only as ledger
// mutations and log output.
type Publisher struct {
	client *kgo.Client
	mu     sync.RWMutex
}

var (
	instance *Publisher
	once     sync.Once
)

type PublishableMessage[T common.Transfer | common.Token] struct {
	Data   T      `json:"data"`
	Status string `json:"status"`
}

// GetInstance returns the singleton Publisher instance
func GetInstance() *Publisher {
	once.Do(func() {
		instance = &Publisher{}
		if err := instance.initialize(); err != nil {
			log.Error().Err(err).Msg("Failed to initialize publisher")
		}
	})
	return instance
}

func (p *Publisher) initialize() error {
	if !config.Cfg.Publisher.Enabled {
		log.Debug().Msg("Publisher is disabled, skipping initialization")
		return nil
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if config.Cfg.Publisher.Brokers == "" {
		log.Info().Msg("No Kafka brokers configured, skipping publisher initialization")
		return nil
	}

	brokers := strings.Split(config.Cfg.Publisher.Brokers, ",")
	opts := []kgo.Opt{
		kgo.SeedBrokers(brokers...),
		kgo.AllowAutoTopicCreation(),
		kgo.ProducerBatchCompression(kgo.SnappyCompression()),
		kgo.ClientID(fmt.Sprintf("token-streams-%s", config.Cfg.RPC.ChainID)),
		kgo.MetadataMaxAge(60 * time.Second),
		kgo.DialTimeout(10 * time.Second),
	}

	if config.Cfg.Publisher.Username != "" && config.Cfg.Publisher.Password != "" {
		opts = append(opts, kgo.SASL(plain.Auth{
			User: config.Cfg.Publisher.Username,
			Pass: config.Cfg.Publisher.Password,
		}.AsMechanism()))
		tlsDialer := &tls.Dialer{NetDialer: &net.Dialer{Timeout: 10 * time.Second}}
		opts = append(opts, kgo.Dialer(tlsDialer.DialContext))
	}

	client, err := kgo.NewClient(opts...)
	if err != nil {
		return fmt.Errorf("failed to create Kafka client: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := client.Ping(ctx); err != nil {
		client.Close()
		return fmt.Errorf("failed to connect to Kafka: %v", err)
	}
	p.client = client
	return nil
}

// PublishBlockStreams emits one block's transfer and token records.
func (p *Publisher) PublishBlockStreams(chainId *big.Int, transfers []common.Transfer, tokens []common.Token) error {
	if p.client == nil || (len(transfers) == 0 && len(tokens) == 0) {
		return nil
	}

	publishStart := time.Now()

	transferMessages := make([]*kgo.Record, 0, len(transfers))
	for _, transfer := range transfers {
		msg, err := p.createTransferMessage(chainId, transfer)
		if err != nil {
			return fmt.Errorf("failed to create transfer message: %v", err)
		}
		transferMessages = append(transferMessages, msg)
	}

	tokenMessages := make([]*kgo.Record, 0, len(tokens))
	for _, token := range tokens {
		msg, err := p.createTokenMessage(chainId, token)
		if err != nil {
			return fmt.Errorf("failed to create token message: %v", err)
		}
		tokenMessages = append(tokenMessages, msg)
	}

	if err := p.publishMessages(context.Background(), transferMessages); err != nil {
		return fmt.Errorf("failed to publish transfer messages: %v", err)
	}
	if err := p.publishMessages(context.Background(), tokenMessages); err != nil {
		return fmt.Errorf("failed to publish token messages: %v", err)
	}

	metrics.PublishDuration.Observe(time.Since(publishStart).Seconds())
	return nil
}

func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.client != nil {
		p.client.Close()
		log.Debug().Msg("Publisher client closed")
	}
	return nil
}

func (p *Publisher) publishMessages(ctx context.Context, messages []*kgo.Record) error {
	if len(messages) == 0 {
		return nil
	}

	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.client == nil {
		return nil // Skip if no client configured
	}

	var wg sync.WaitGroup
	wg.Add(len(messages))
	for _, msg := range messages {
		p.client.Produce(ctx, msg, func(_ *kgo.Record, err error) {
			defer wg.Done()
			if err != nil {
				log.Error().Err(err).Msg("Failed to publish message to Kafka")
			}
		})
	}
	wg.Wait()

	return nil
}

func (p *Publisher) createTransferMessage(chainId *big.Int, transfer common.Transfer) (*kgo.Record, error) {
	msg := PublishableMessage[common.Transfer]{
		Data:   transfer,
		Status: "new",
	}
	msgJson, err := json.Marshal(msg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal transfer data: %v", err)
	}
	return &kgo.Record{
		Topic: p.getTopicName("transfers"),
		Key:   []byte(fmt.Sprintf("transfer-%s-%s-%d", chainId.String(), transfer.TrxHash, transfer.Ordinal)),
		Value: msgJson,
	}, nil
}

func (p *Publisher) createTokenMessage(chainId *big.Int, token common.Token) (*kgo.Record, error) {
	msg := PublishableMessage[common.Token]{
		Data:   token,
		Status: "new",
	}
	msgJson, err := json.Marshal(msg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal token data: %v", err)
	}
	return &kgo.Record{
		Topic: p.getTopicName("tokens"),
		Key:   []byte(fmt.Sprintf("token-%s-%s", chainId.String(), token.Address)),
		Value: msgJson,
	}, nil
}

func (p *Publisher) getTopicName(entity string) string {
	chainIdSuffix := ""
	if config.Cfg.RPC.ChainID != "" {
		chainIdSuffix = fmt.Sprintf(".%s", config.Cfg.RPC.ChainID)
	}
	switch entity {
	case "transfers":
		if config.Cfg.Publisher.Transfers.TopicName != "" {
			return config.Cfg.Publisher.Transfers.TopicName
		}
		return fmt.Sprintf("tokenstreams.transfers%s", chainIdSuffix)
	case "tokens":
		if config.Cfg.Publisher.Tokens.TopicName != "" {
			return config.Cfg.Publisher.Tokens.TopicName
		}
		return fmt.Sprintf("tokenstreams.tokens%s", chainIdSuffix)
	default:
		return ""
	}
}
