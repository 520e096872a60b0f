package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"strings"
	"time"
	"unicode"

	"github.com/segmentio/kafka-go"

	"github.com/yeonjoon13/flight-dashboard/internal/model"
)

// readRetryDelay is the pause after a failed read before trying again.
var readRetryDelay = time.Second

// NewReader returns a group reader that starts at the newest offset and
// waits indefinitely for messages.
func NewReader(broker, topic, groupID string) *kafka.Reader {
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers:         []string{broker},
		Topic:           topic,
		GroupID:         groupID,
		MinBytes:        1e3,
		MaxBytes:        10e6,
		MaxWait:         time.Second,
		ReadLagInterval: -1,
		StartOffset:     kafka.LastOffset,
	})
}

// MessageReader is satisfied by *kafka.Reader.
type MessageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
}

// Consume decodes enriched flights from r and passes them to handle until
// ctx is done or the reader is closed. Messages that do not decode are
// logged and skipped; other read errors are retried.
func Consume(ctx context.Context, r MessageReader, logger *slog.Logger, handle func(model.EnrichedFlight)) error {
	for {
		m, err := r.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			if errors.Is(err, io.EOF) {
				return nil
			}
			logger.Warn("kafka read error", "err", err)
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(readRetryDelay):
			}
			continue
		}

		var f model.EnrichedFlight
		if err := json.Unmarshal(cleanJSON(m.Value), &f); err != nil {
			logger.Warn("skipping undecodable message",
				"err", err, "partition", m.Partition, "offset", m.Offset)
			continue
		}
		handle(f)
	}
}

// cleanJSON drops a leading byte order mark or unicode space.
func cleanJSON(raw []byte) []byte {
	s := strings.TrimLeftFunc(string(raw), func(r rune) bool {
		return unicode.IsSpace(r) || r == '\ufeff'
	})
	return []byte(s)
}
