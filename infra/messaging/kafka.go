package messaging

import (
	"context"
	"duel-service/domain"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const MessageScoreSubmitted = "score_submitted"

type KafkaConfig struct {
	Brokers      []string
	Topic        string
	BatchTimeout time.Duration
}

// ScoreEvent, oyun sonucu topic'ine yazılan mesaj gövdesi.
type ScoreEvent struct {
	Type   string             `json:"type"`
	Record domain.ScoreRecord `json:"record"`
}

// MessageWriter is the subset of *kafka.Writer used here.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher maç sonuçlarını kafka'ya yazar; skor deposu fan-out'unun bir kolu.
type KafkaPublisher struct {
	writer MessageWriter
	topic  string
}

func NewKafkaPublisher(cfg KafkaConfig) *KafkaPublisher {
	if cfg.BatchTimeout <= 0 {
		cfg.BatchTimeout = 50 * time.Millisecond
	}
	writer := &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Topic:                  cfg.Topic,
		Balancer:               &kafka.Hash{},
		BatchTimeout:           cfg.BatchTimeout,
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
	}
	zap.L().Info("Kafka publisher initialized",
		zap.Strings("brokers", cfg.Brokers),
		zap.String("topic", cfg.Topic))
	return &KafkaPublisher{writer: writer, topic: cfg.Topic}
}

func NewKafkaPublisherWithWriter(writer MessageWriter, topic string) *KafkaPublisher {
	return &KafkaPublisher{writer: writer, topic: topic}
}

// SubmitScore publishes the record keyed by room id so a room's results share a partition.
func (p *KafkaPublisher) SubmitScore(ctx context.Context, record domain.ScoreRecord) error {
	payload, err := json.Marshal(ScoreEvent{Type: MessageScoreSubmitted, Record: record})
	if err != nil {
		return fmt.Errorf("failed to marshal score event: %w", err)
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(record.RoomID.String()),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "type", Value: []byte(MessageScoreSubmitted)},
		},
		Time: record.FinishedAt,
	})
	if err != nil {
		return fmt.Errorf("failed to publish score event to %s: %w", p.topic, err)
	}
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
