package app

import (
	"testing"

	log "github.com/sirupsen/logrus"
)

func TestInitKafkaProducer_EmptyBrokers(t *testing.T) {
	producer, err := initKafkaProducer("", log.WithField("test", "kafka"))
	if err != nil {
		t.Errorf("expected no error for empty brokers, got %v", err)
	}
	if producer != nil {
		t.Error("expected nil producer for empty brokers")
	}
}

func TestInitKafkaProducer_UnreachableBrokers(t *testing.T) {
	producer, err := initKafkaProducer("127.0.0.1:1,127.0.0.1:2", log.WithField("test", "kafka"))
	if err == nil {
		t.Error("expected error for unreachable brokers")
	}
	if producer != nil {
		t.Error("expected nil producer on error")
	}
}

func TestCloseKafka_NilProducer(t *testing.T) {
	// Не должно паниковать.
	closeKafka(nil, log.WithField("test", "kafka"))
}
