package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/IBM/sarama"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/shop/internal/messaging/kafka"
)

const defaultIdleTimeout = 2 * time.Second

type config struct {
	brokers     []string
	sourceTopic string
	targetTopic string
	limit       int
	execute     bool
	idleTimeout time.Duration
}

// consumerDLQRecord — формат, в котором consumer каталога складывает
// необработанные сообщения в DLQ.
type consumerDLQRecord struct {
	OriginalTopic string `json:"original_topic"`
	OriginalKey   string `json:"original_key"`
	OriginalValue string `json:"original_value"`
}

// outboxDLQRecord — формат, в котором outbox worker складывает
// неопубликованные события заказов в DLQ.
type outboxDLQRecord struct {
	OutboxID      string          `json:"outbox_id"`
	AggregateType string          `json:"aggregate_type"`
	AggregateID   string          `json:"aggregate_id"`
	EventType     string          `json:"event_type"`
	Payload       json.RawMessage `json:"payload"`
}

type replayMessage struct {
	topic string
	key   string
	value []byte
}

// decodeReplay восстанавливает исходное сообщение из DLQ-записи.
// Поддерживаются оба формата: consumer DLQ и outbox DLQ.
func decodeReplay(value []byte, fallbackTopic string) (replayMessage, error) {
	var consumerRecord consumerDLQRecord
	if err := json.Unmarshal(value, &consumerRecord); err == nil && consumerRecord.OriginalTopic != "" {
		return replayMessage{
			topic: consumerRecord.OriginalTopic,
			key:   consumerRecord.OriginalKey,
			value: []byte(consumerRecord.OriginalValue),
		}, nil
	}

	var outboxRecord outboxDLQRecord
	if err := json.Unmarshal(value, &outboxRecord); err != nil {
		return replayMessage{}, fmt.Errorf("decode dlq record: %w", err)
	}
	if outboxRecord.OutboxID == "" || outboxRecord.EventType == "" {
		return replayMessage{}, fmt.Errorf("dlq record has unknown shape")
	}

	envelope, err := json.Marshal(map[string]any{
		"id":             outboxRecord.OutboxID,
		"aggregate_type": outboxRecord.AggregateType,
		"aggregate_id":   outboxRecord.AggregateID,
		"event_type":     outboxRecord.EventType,
		"payload":        outboxRecord.Payload,
		"published_at":   time.Now().UTC(),
	})
	if err != nil {
		return replayMessage{}, fmt.Errorf("rebuild envelope: %w", err)
	}

	return replayMessage{
		topic: fallbackTopic,
		key:   outboxRecord.AggregateID,
		value: envelope,
	}, nil
}

func readConfig() config {
	var (
		brokers     string
		sourceTopic string
		targetTopic string
		limit       int
		execute     bool
	)

	flag.StringVar(&brokers, "brokers", "", "comma-separated Kafka brokers (fallback: SHOP_KAFKA_BROKERS)")
	flag.StringVar(&sourceTopic, "source", kafka.TopicDeadLetterQueue, "DLQ topic to drain")
	flag.StringVar(&targetTopic, "target", kafka.TopicOrderEvents, "fallback topic for outbox records")
	flag.IntVar(&limit, "limit", 100, "maximum number of messages to replay")
	flag.BoolVar(&execute, "execute", false, "republish messages; default is dry-run")
	flag.Parse()

	if strings.TrimSpace(brokers) == "" {
		brokers = strings.TrimSpace(os.Getenv("SHOP_KAFKA_BROKERS"))
	}
	if brokers == "" {
		fmt.Fprintln(os.Stderr, "SHOP_KAFKA_BROKERS (or -brokers) is required")
		os.Exit(1)
	}

	return config{
		brokers:     strings.Split(brokers, ","),
		sourceTopic: sourceTopic,
		targetTopic: targetTopic,
		limit:       limit,
		execute:     execute,
		idleTimeout: defaultIdleTimeout,
	}
}

func main() {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	cfg := readConfig()
	logger := log.WithField("component", "dlq-reprocess")

	saramaConfig := sarama.NewConfig()
	saramaConfig.Producer.RequiredAcks = sarama.WaitForAll
	saramaConfig.Producer.Return.Successes = true

	client, err := sarama.NewClient(cfg.brokers, saramaConfig)
	if err != nil {
		logger.WithError(err).Fatal("create kafka client")
	}
	defer client.Close()

	consumer, err := sarama.NewConsumerFromClient(client)
	if err != nil {
		logger.WithError(err).Fatal("create kafka consumer")
	}
	defer consumer.Close()

	var producer sarama.SyncProducer
	if cfg.execute {
		producer, err = sarama.NewSyncProducerFromClient(client)
		if err != nil {
			logger.WithError(err).Fatal("create kafka producer")
		}
		defer producer.Close()
	}

	partitions, err := client.Partitions(cfg.sourceTopic)
	if err != nil {
		logger.WithError(err).Fatal("list partitions")
	}

	replayed := 0
	skipped := 0
	for _, partition := range partitions {
		if replayed >= cfg.limit {
			break
		}
		newest, err := client.GetOffset(cfg.sourceTopic, partition, sarama.OffsetNewest)
		if err != nil {
			logger.WithError(err).WithField("partition", partition).Warn("get newest offset")
			continue
		}
		if newest == 0 {
			continue
		}

		pc, err := consumer.ConsumePartition(cfg.sourceTopic, partition, sarama.OffsetOldest)
		if err != nil {
			logger.WithError(err).WithField("partition", partition).Warn("consume partition")
			continue
		}

		idle := time.NewTimer(cfg.idleTimeout)
	drain:
		for replayed < cfg.limit {
			select {
			case msg := <-pc.Messages():
				replay, err := decodeReplay(msg.Value, cfg.targetTopic)
				if err != nil {
					logger.WithError(err).WithField("offset", msg.Offset).Warn("skipping malformed dlq record")
					skipped++
				} else if cfg.execute {
					_, _, err := producer.SendMessage(&sarama.ProducerMessage{
						Topic: replay.topic,
						Key:   sarama.StringEncoder(replay.key),
						Value: sarama.ByteEncoder(replay.value),
					})
					if err != nil {
						logger.WithError(err).WithField("offset", msg.Offset).Warn("republish failed")
						skipped++
					} else {
						replayed++
					}
				} else {
					logger.WithFields(log.Fields{
						"topic": replay.topic,
						"key":   replay.key,
					}).Info("dry-run: would republish")
					replayed++
				}
				if msg.Offset >= newest-1 {
					break drain
				}
				if !idle.Stop() {
					<-idle.C
				}
				idle.Reset(cfg.idleTimeout)
			case <-idle.C:
				break drain
			}
		}
		idle.Stop()
		_ = pc.Close()
	}

	mode := "dry-run"
	if cfg.execute {
		mode = "execute"
	}
	logger.WithFields(log.Fields{
		"mode":     mode,
		"replayed": replayed,
		"skipped":  skipped,
	}).Info("dlq reprocess finished")
}
