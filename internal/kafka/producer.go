package kafka

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/segmentio/kafka-go"

	"github.com/yeonjoon13/flight-dashboard/internal/model"
)

// EnrichedFlightsTopic carries one message per enriched flight, keyed by ICAO24.
const EnrichedFlightsTopic = "enriched_flights"

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Publisher writes enriched flight snapshots to a topic.
type Publisher struct {
	w messageWriter
}

// NewPublisher returns a Publisher that hashes keys onto partitions so that
// updates for one aircraft stay ordered.
func NewPublisher(broker, topic string) *Publisher {
	return &Publisher{w: &kafka.Writer{
		Addr:                   kafka.TCP(broker),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		AllowAutoTopicCreation: true,
	}}
}

// Publish writes one message per flight. An empty batch is a no-op.
func (p *Publisher) Publish(ctx context.Context, flights []model.EnrichedFlight) error {
	if len(flights) == 0 {
		return nil
	}
	msgs, err := encodeFlights(flights)
	if err != nil {
		return err
	}
	if err := p.w.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("writing %d messages: %w", len(msgs), err)
	}
	return nil
}

// Close flushes pending messages and closes the writer.
func (p *Publisher) Close() error {
	return p.w.Close()
}

func encodeFlights(flights []model.EnrichedFlight) ([]kafka.Message, error) {
	msgs := make([]kafka.Message, len(flights))
	for i, f := range flights {
		b, err := json.Marshal(f)
		if err != nil {
			return nil, fmt.Errorf("encoding flight %s: %w", f.ICAO24, err)
		}
		msgs[i] = kafka.Message{Key: []byte(f.ICAO24), Value: b}
	}
	return msgs, nil
}
