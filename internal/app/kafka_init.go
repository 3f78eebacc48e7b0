package app

import (
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/fulfillment/internal/messaging/kafka"
)

// initKafkaProducer создаёт producer событий заказов, если задан список
// брокеров. Пустой список — события отключены, возвращается nil, nil.
func initKafkaProducer(brokers string, logger *log.Entry) (*kafka.Producer, error) {
	if strings.TrimSpace(brokers) == "" {
		return nil, nil
	}

	brokerList := make([]string, 0)
	for _, b := range strings.Split(brokers, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokerList = append(brokerList, b)
		}
	}

	producer, err := kafka.NewProducer(brokerList)
	if err != nil {
		logger.WithError(err).Warn("failed to create kafka producer, continuing without kafka")
		return nil, err
	}

	logger.WithField("brokers", brokerList).Info("kafka producer initialized, order events enabled")
	return producer, nil
}

// closeKafka закрывает producer событий, если он был создан.
func closeKafka(producer *kafka.Producer, logger *log.Entry) {
	if producer == nil {
		return
	}

	if err := producer.Close(); err != nil {
		logger.WithError(err).Warn("failed to close kafka producer")
	} else {
		logger.Info("kafka producer closed")
	}
}
