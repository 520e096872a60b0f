package kafka

import (
	"errors"
	"fmt"
	"net"
	"strconv"

	"github.com/segmentio/kafka-go"
)

// TopicConfig describes a topic to create. Zero counts default to 1.
type TopicConfig struct {
	Topic             string
	NumPartitions     int
	ReplicationFactor int
}

// EnsureTopics creates each topic on the cluster controller. Topics that
// already exist are left as they are.
func EnsureTopics(broker string, configs []TopicConfig) error {
	conn, err := kafka.Dial("tcp", broker)
	if err != nil {
		return fmt.Errorf("dialing %s: %w", broker, err)
	}
	defer conn.Close()

	controller, err := conn.Controller()
	if err != nil {
		return fmt.Errorf("finding controller: %w", err)
	}
	ctrlConn, err := kafka.Dial("tcp", net.JoinHostPort(controller.Host, strconv.Itoa(controller.Port)))
	if err != nil {
		return fmt.Errorf("dialing controller: %w", err)
	}
	defer ctrlConn.Close()

	for _, cfg := range configs {
		err := ctrlConn.CreateTopics(topicConfig(cfg))
		if ignoreExists(err) != nil {
			return fmt.Errorf("creating topic %s: %w", cfg.Topic, err)
		}
	}
	return nil
}

// topicConfig fills in single-broker defaults.
func topicConfig(cfg TopicConfig) kafka.TopicConfig {
	if cfg.NumPartitions <= 0 {
		cfg.NumPartitions = 1
	}
	if cfg.ReplicationFactor <= 0 {
		cfg.ReplicationFactor = 1
	}
	return kafka.TopicConfig{
		Topic:             cfg.Topic,
		NumPartitions:     cfg.NumPartitions,
		ReplicationFactor: cfg.ReplicationFactor,
	}
}

func ignoreExists(err error) error {
	if errors.Is(err, kafka.TopicAlreadyExists) {
		return nil
	}
	return err
}
