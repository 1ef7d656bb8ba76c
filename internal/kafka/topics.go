package kafka

import (
	"net"
	"strconv"

	"github.com/segmentio/kafka-go"
)

// CreateTopicIfNotExists creates a topic with a single partition on the
// cluster controller. Existing topics are left untouched.
func CreateTopicIfNotExists(brokers []string, topic string) error {
	conn, err := kafka.Dial("tcp", brokers[0])
	if err != nil {
		return err
	}
	defer conn.Close()

	controller, err := conn.Controller()
	if err != nil {
		return err
	}

	controllerConn, err := kafka.Dial("tcp", net.JoinHostPort(controller.Host, strconv.Itoa(controller.Port)))
	if err != nil {
		return err
	}
	defer controllerConn.Close()

	return controllerConn.CreateTopics(kafka.TopicConfig{
		Topic:             topic,
		NumPartitions:     1,
		ReplicationFactor: 1,
	})
}

// EnsureTopicsExist creates every required topic, stopping at the first error.
func EnsureTopicsExist(brokers []string, topics []string) error {
	for _, topic := range topics {
		if err := CreateTopicIfNotExists(brokers, topic); err != nil {
			return err
		}
	}
	return nil
}
