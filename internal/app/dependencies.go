package app

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/fulfillment/internal/domain"
	"github.com/vladislavdragonenkov/fulfillment/internal/service/cart"
	"github.com/vladislavdragonenkov/fulfillment/internal/service/customer"
	"github.com/vladislavdragonenkov/fulfillment/internal/service/inventory"
	"github.com/vladislavdragonenkov/fulfillment/internal/storage/memory"
	"github.com/vladislavdragonenkov/fulfillment/internal/storage/postgres"
)

// Dependencies содержит собранные зависимости сервиса.
type Dependencies struct {
	Repo      domain.OrderRepository
	Customers domain.CustomerDirectory
	Carts     domain.CartService
	Inventory domain.InventoryService
	Logger    *log.Entry

	store *postgres.Store
}

// NewDependencies собирает хранилище и клиентов коллабораторов по конфигурации.
// Пустой базовый URL коллаборатора даёт mock-реализацию.
func NewDependencies(ctx context.Context, cfg Config, logger *log.Entry) (*Dependencies, error) {
	if logger == nil {
		logger = log.WithField("component", "app")
	}

	deps := &Dependencies{Logger: logger}

	switch cfg.StorageDriver {
	case StorageDriverPostgres:
		store, err := postgres.Open(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		if cfg.PostgresAutoMigrate {
			if err := store.EnsureSchema(ctx); err != nil {
				_ = store.Close()
				return nil, fmt.Errorf("apply migrations: %w", err)
			}
		}
		deps.store = store
		deps.Repo = postgres.NewOrderRepository(store)
		logger.Info("using postgres order storage")
	case StorageDriverMemory:
		deps.Repo = memory.NewOrderRepository()
		logger.Info("using in-memory order storage")
	default:
		return nil, fmt.Errorf("unsupported storage driver: %s", cfg.StorageDriver)
	}

	if cfg.CustomerBaseURL != "" {
		deps.Customers = customer.NewClient(cfg.CustomerBaseURL, logger.WithField("client", "customer"))
	} else {
		deps.Customers = customer.NewMockService()
		logger.Warn("customer directory URL is not set, using mock")
	}

	if cfg.CartBaseURL != "" {
		deps.Carts = cart.NewClient(cfg.CartBaseURL, logger.WithField("client", "cart"))
	} else {
		deps.Carts = cart.NewMockService()
		logger.Warn("cart service URL is not set, using mock")
	}

	if cfg.InventoryBaseURL != "" {
		deps.Inventory = inventory.NewClient(cfg.InventoryBaseURL, logger.WithField("client", "inventory"))
	} else {
		deps.Inventory = inventory.NewMockService()
		logger.Warn("inventory service URL is not set, using mock")
	}

	return deps, nil
}

// StoragePing возвращает health-check хранилища (nil-проверка для памяти).
func (d *Dependencies) StoragePing(ctx context.Context) error {
	if d.store == nil {
		return nil
	}
	return d.store.Ping(ctx)
}

// Close освобождает ресурсы хранилища.
func (d *Dependencies) Close() error {
	if d.store == nil {
		return nil
	}
	return d.store.Close()
}
