package events

import (
	"context"
	"encoding/json"
	"strings"

	"teapos/internal/logging"

	"github.com/IBM/sarama"
	"github.com/sirupsen/logrus"
)

const Topic = "pos.orders"

// Kafka appends events to a topic keyed by order id, so one order's events
// stay in one partition.
type Kafka struct {
	producer sarama.SyncProducer
	logger   *logrus.Entry
}

// NewKafkaProducer dials a comma-separated broker list.
func NewKafkaProducer(brokers string) (sarama.SyncProducer, error) {
	config := sarama.NewConfig()
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Retry.Max = 5
	config.Producer.Return.Successes = true
	config.Version = sarama.V2_6_0_0
	return sarama.NewSyncProducer(strings.Split(brokers, ","), config)
}

func NewKafka(producer sarama.SyncProducer, logger *logrus.Entry) *Kafka {
	return &Kafka{producer: producer, logger: logging.OrDiscard(logger)}
}

func (k *Kafka) Publish(_ context.Context, e Event) error {
	data, err := json.Marshal(e)
	if err != nil {
		return err
	}
	msg := &sarama.ProducerMessage{
		Topic: Topic,
		Key:   sarama.StringEncoder(e.OrderID),
		Value: sarama.ByteEncoder(data),
		Headers: []sarama.RecordHeader{
			{Key: []byte("type"), Value: []byte(e.Type)},
		},
	}
	partition, offset, err := k.producer.SendMessage(msg)
	if err != nil {
		k.logger.WithError(err).Error("send event to kafka")
		return err
	}
	k.logger.WithFields(logrus.Fields{
		"topic":     Topic,
		"partition": partition,
		"offset":    offset,
		"order_id":  e.OrderID,
		"type":      e.Type,
	}).Debug("event published to kafka")
	return nil
}

func (k *Kafka) Close() error {
	return k.producer.Close()
}
