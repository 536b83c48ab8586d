package events

import (
	"context"

	kafka "github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"
)

// KafkaPublisher ships events to a kafka topic, one JSON message per event
// keyed by event name. Delivery failures are logged and dropped, matching the
// fire-and-forget contract of the port.
type KafkaPublisher struct {
	writer *kafka.Writer
}

func NewKafkaPublisher(brokers string, topic string) *KafkaPublisher {
	w := &kafka.Writer{
		Addr:     kafka.TCP(brokers),
		Topic:    topic,
		Balancer: &kafka.LeastBytes{},
	}
	return &KafkaPublisher{writer: w}
}

func (p *KafkaPublisher) Publish(ctx context.Context, e Event) {
	payload, err := MarshalEvent(e)
	if err != nil {
		logrus.WithError(err).WithField("event", e.Name).Error("marshal event")
		return
	}
	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(e.Name),
		Value: payload,
	})
	if err != nil {
		logrus.WithError(err).WithField("event", e.Name).Error("publish event")
	}
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
