package kafka

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/segmentio/kafka-go"

	"github.com/fastprodman/playereconomy/internal/notify"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Publisher sends economy events to a Kafka topic as JSON, keyed by player id
// so one player's events stay ordered within a partition.
type Publisher struct {
	writer messageWriter
}

func NewPublisher(brokers []string, topic string) *Publisher {
	return &Publisher{
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(brokers...),
			Topic:                  topic,
			Balancer:               &kafka.Hash{},
			AllowAutoTopicCreation: true,
		},
	}
}

func (p *Publisher) InterestCredited(ctx context.Context, ev notify.InterestCredited) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(ev.PlayerID.String()),
		Value: data,
		Headers: []kafka.Header{
			{Key: "event", Value: []byte("interest_credited")},
		},
	})
	if err != nil {
		return fmt.Errorf("write message: %w", err)
	}

	return nil
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}
