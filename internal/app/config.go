package app

import (
	"fmt"
	"os"
	"strings"
)

// Драйверы хранилища заказов.
const (
	StorageDriverMemory   = "memory"
	StorageDriverPostgres = "postgres"
)

// Config описывает настройки запуска сервиса.
type Config struct {
	HTTPAddr    string
	MetricsAddr string

	StorageDriver       string
	PostgresDSN         string
	PostgresAutoMigrate bool

	KafkaBrokers string

	// Базовые URL коллабораторов. Пустое значение означает mock-реализацию
	// (локальная разработка и тесты).
	CustomerBaseURL  string
	CartBaseURL      string
	InventoryBaseURL string
}

// DefaultConfig возвращает конфигурацию для локального запуска:
// in-memory хранилище и mock-коллабораторы.
func DefaultConfig() Config {
	return Config{
		HTTPAddr:            ":8080",
		MetricsAddr:         ":9090",
		StorageDriver:       StorageDriverMemory,
		PostgresAutoMigrate: true,
	}
}

// ConfigFromEnv накладывает переменные окружения FULFILLMENT_* поверх дефолтов.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()

	if v := strings.TrimSpace(os.Getenv("FULFILLMENT_HTTP_ADDR")); v != "" {
		cfg.HTTPAddr = v
	}
	if v := strings.TrimSpace(os.Getenv("FULFILLMENT_METRICS_ADDR")); v != "" {
		cfg.MetricsAddr = v
	}
	if v := strings.TrimSpace(os.Getenv("FULFILLMENT_STORAGE_DRIVER")); v != "" {
		cfg.StorageDriver = v
	}
	if v := strings.TrimSpace(os.Getenv("FULFILLMENT_POSTGRES_DSN")); v != "" {
		cfg.PostgresDSN = v
	}
	if v := strings.TrimSpace(os.Getenv("FULFILLMENT_POSTGRES_AUTO_MIGRATE")); v != "" {
		cfg.PostgresAutoMigrate = v == "1" || strings.EqualFold(v, "true")
	}
	if v := strings.TrimSpace(os.Getenv("KAFKA_BROKERS")); v != "" {
		cfg.KafkaBrokers = v
	}
	if v := strings.TrimSpace(os.Getenv("FULFILLMENT_CUSTOMER_URL")); v != "" {
		cfg.CustomerBaseURL = v
	}
	if v := strings.TrimSpace(os.Getenv("FULFILLMENT_CART_URL")); v != "" {
		cfg.CartBaseURL = v
	}
	if v := strings.TrimSpace(os.Getenv("FULFILLMENT_INVENTORY_URL")); v != "" {
		cfg.InventoryBaseURL = v
	}

	return cfg
}

// Validate проверяет согласованность конфигурации.
func (c Config) Validate() error {
	switch c.StorageDriver {
	case StorageDriverMemory:
	case StorageDriverPostgres:
		if strings.TrimSpace(c.PostgresDSN) == "" {
			return fmt.Errorf("postgres storage driver requires FULFILLMENT_POSTGRES_DSN")
		}
	default:
		return fmt.Errorf("unsupported storage driver: %s", c.StorageDriver)
	}
	return nil
}
