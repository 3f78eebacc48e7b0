package fulfillment

import (
	"errors"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/fulfillment/internal/domain"
	"github.com/vladislavdragonenkov/fulfillment/internal/messaging/kafka"
	"github.com/vladislavdragonenkov/fulfillment/internal/metrics"
)

// Service — оркестратор фулфилмента: композиция справочника клиентов,
// корзины, склада и хранилища заказов в операции place/cancel.
//
// Ни одна операция не атомарна между коллабораторами: единственная точка
// сериализации — запись в хранилище заказов. Частично применённые изменения
// стока при сбое размещения не откатываются (поведение исходной системы).
type Service struct {
	repo      domain.OrderRepository
	customers domain.CustomerDirectory
	carts     domain.CartService
	inventory domain.InventoryService
	logger    *log.Entry
	metrics   *metrics.FulfillmentMetrics
	producer  *kafka.Producer // опциональный Kafka producer для событий жизненного цикла
}

// NewService создаёт рабочий экземпляр оркестратора.
func NewService(
	repo domain.OrderRepository,
	customers domain.CustomerDirectory,
	carts domain.CartService,
	inventory domain.InventoryService,
	logger *log.Entry,
) *Service {
	if logger == nil {
		logger = log.New().WithField("component", "fulfillment")
	}
	return &Service{
		repo:      repo,
		customers: customers,
		carts:     carts,
		inventory: inventory,
		logger:    logger,
		metrics:   metrics.NewFulfillmentMetrics(),
	}
}

// NewServiceWithKafka создаёт оркестратор с Kafka producer для публикации событий.
func NewServiceWithKafka(
	repo domain.OrderRepository,
	customers domain.CustomerDirectory,
	carts domain.CartService,
	inventory domain.InventoryService,
	producer *kafka.Producer,
	logger *log.Entry,
) *Service {
	svc := NewService(repo, customers, carts, inventory, logger)
	svc.producer = producer
	return svc
}

// NewServiceWithoutMetrics создаёт оркестратор без метрик (для тестов).
func NewServiceWithoutMetrics(
	repo domain.OrderRepository,
	customers domain.CustomerDirectory,
	carts domain.CartService,
	inventory domain.InventoryService,
	logger *log.Entry,
) *Service {
	if logger == nil {
		logger = log.New().WithField("component", "fulfillment")
	}
	return &Service{
		repo:      repo,
		customers: customers,
		carts:     carts,
		inventory: inventory,
		logger:    logger,
		metrics:   nil, // Отключаем метрики для тестов
	}
}

// PlaceOrder собирает заказ из корзины клиента.
//
// Шаги строго последовательны: проверка клиента, чтение корзины,
// поштучное списание стока, запись заказа, очистка корзины. Сбой
// резервирования на позиции N оставляет позиции 1..N-1 списанными —
// компенсации нет, операция просто завершается ошибкой.
func (s *Service) PlaceOrder(customerID string) (domain.Order, error) {
	start := time.Now()
	if s.metrics != nil {
		s.metrics.RecordPlacementStarted()
	}
	defer func() {
		if s.metrics != nil {
			s.metrics.RecordPlacementFinished()
			s.metrics.RecordPlaceDuration(time.Since(start))
		}
	}()

	customer, err := s.customers.GetCustomer(customerID)
	if err != nil {
		s.logger.WithError(err).WithField("customer_id", customerID).Warn("customer lookup failed")
		s.recordPlaceFailed()
		return domain.Order{}, err
	}
	s.recordStep("customer_lookup", start)

	cartStart := time.Now()
	cartItems, err := s.carts.GetCart(customerID)
	if err != nil {
		s.logger.WithError(err).WithField("customer_id", customerID).Warn("cart fetch failed")
		s.recordPlaceFailed()
		return domain.Order{}, err
	}
	if len(cartItems) == 0 {
		s.recordPlaceFailed()
		return domain.Order{}, fmt.Errorf("%w: customer %s", domain.ErrCartEmpty, customerID)
	}
	s.recordStep("cart_fetch", cartStart)

	// Списываем сток по позициям в порядке корзины. Ранее успешные
	// списания при сбое не откатываются.
	reserveStart := time.Now()
	for _, item := range cartItems {
		if err := s.inventory.ReduceStock(item.ProductID, item.Quantity); err != nil {
			s.logger.WithError(err).WithFields(log.Fields{
				"customer_id": customerID,
				"product_id":  item.ProductID,
				"qty":         item.Quantity,
			}).Warn("stock reduction failed, abandoning order build")
			s.recordPlaceFailed()
			return domain.Order{}, err
		}
	}
	s.recordStep("reserve", reserveStart)

	order := domain.Order{
		CustomerID: customerID,
		Status:     domain.OrderStatusPlaced,
		Items:      make([]domain.OrderItem, 0, len(cartItems)),
	}
	for _, item := range cartItems {
		order.Items = append(order.Items, domain.OrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}

	persistStart := time.Now()
	saved, err := s.repo.Create(order)
	if err != nil {
		// Сток уже списан; заказ не сохранён. Несогласованность наблюдаема.
		s.logger.WithError(err).WithField("customer_id", customerID).Error("persist order failed after stock reduction")
		s.recordPlaceFailed()
		return domain.Order{}, fmt.Errorf("persist order: %w", err)
	}
	s.recordStep("persist", persistStart)

	clearStart := time.Now()
	if err := s.carts.ClearCart(customerID); err != nil {
		// Заказ уже сохранён; ошибка уходит вызывающему.
		s.logger.WithError(err).WithFields(log.Fields{
			"customer_id": customerID,
			"order_id":    saved.ID,
		}).Warn("cart clear failed after order persisted")
		s.recordPlaceFailed()
		return domain.Order{}, err
	}
	s.recordStep("clear_cart", clearStart)

	if s.metrics != nil {
		s.metrics.RecordOrderPlaced()
	}
	s.publishOrderEvent(kafka.EventTypeOrderPlaced, saved, map[string]interface{}{
		"items_count": len(saved.Items),
	})

	s.logger.WithFields(log.Fields{
		"order_id":      saved.ID,
		"customer_id":   customerID,
		"customer_name": customer.Name,
		"items_count":   len(saved.Items),
	}).Info("order placed")

	return saved, nil
}

// CancelOrder переводит заказ в CANCELLED и возвращает сток по каждой позиции.
//
// Компенсация выполняется для всех позиций даже при сбоях отдельных вызовов;
// ошибки собираются и возвращаются одним значением. Повторная отмена уже
// отменённого заказа не блокируется и повторно зачислит сток.
func (s *Service) CancelOrder(orderID string) error {
	order, err := s.repo.Get(orderID)
	if err != nil {
		return fmt.Errorf("load order %s: %w", orderID, err)
	}

	if order.Status == domain.OrderStatusDelivered {
		return fmt.Errorf("%w: id %s", domain.ErrOrderDelivered, orderID)
	}

	order.Status = domain.OrderStatusCancelled
	if err := s.repo.Save(order); err != nil {
		return fmt.Errorf("persist cancelled status: %w", err)
	}

	var compErrs []error
	for _, item := range order.Items {
		compStart := time.Now()
		if err := s.inventory.IncreaseStock(item.ProductID, item.Quantity); err != nil {
			s.logger.WithError(err).WithFields(log.Fields{
				"order_id":   orderID,
				"product_id": item.ProductID,
				"qty":        item.Quantity,
			}).Warn("stock compensation failed")
			if s.metrics != nil {
				s.metrics.RecordCompensationFailed()
			}
			compErrs = append(compErrs, err)
			continue
		}
		s.recordStep("compensate", compStart)
	}

	if s.metrics != nil {
		s.metrics.RecordOrderCancelled()
	}
	s.publishOrderEvent(kafka.EventTypeOrderCancelled, order, map[string]interface{}{
		"compensation_failures": len(compErrs),
	})

	s.logger.WithFields(log.Fields{
		"order_id":    orderID,
		"customer_id": order.CustomerID,
	}).Info("order cancelled")

	if len(compErrs) > 0 {
		return fmt.Errorf("restore stock for order %s: %w", orderID, errors.Join(compErrs...))
	}
	return nil
}

// UpdateOrderStatus перезаписывает статус заказа строкой вызывающего.
// Легальность перехода здесь сознательно не проверяется; компенсация
// не запускается даже при переводе в CANCELLED через этот путь.
func (s *Service) UpdateOrderStatus(orderID, status string) (domain.Order, error) {
	order, err := s.repo.Get(orderID)
	if err != nil {
		return domain.Order{}, fmt.Errorf("load order %s: %w", orderID, err)
	}

	order.Status = domain.OrderStatus(status)
	if err := s.repo.Save(order); err != nil {
		return domain.Order{}, fmt.Errorf("persist status: %w", err)
	}

	if s.metrics != nil {
		s.metrics.RecordStatusUpdated()
	}
	s.publishOrderEvent(kafka.EventTypeOrderStatusChanged, order, nil)

	return order, nil
}

// AddOrder сохраняет заказ, созданный напрямую (вне workflow размещения).
func (s *Service) AddOrder(order domain.Order) (domain.Order, error) {
	if errs := order.ValidateInvariants(); len(errs) > 0 {
		return domain.Order{}, fmt.Errorf("%w: %w", domain.ErrOrderInvalid, errors.Join(errs...))
	}
	return s.repo.Create(order)
}

// GetOrder возвращает заказ по идентификатору.
func (s *Service) GetOrder(orderID string) (domain.Order, error) {
	return s.repo.Get(orderID)
}

// ListOrders возвращает все заказы.
func (s *Service) ListOrders() ([]domain.Order, error) {
	return s.repo.List()
}

// ListCustomerOrders возвращает заказы одного клиента.
func (s *Service) ListCustomerOrders(customerID string, limit int) ([]domain.Order, error) {
	return s.repo.ListByCustomer(customerID, limit)
}

// UpdateOrder применяет к существующему заказу только поле статуса;
// остальные поля переданного заказа игнорируются.
func (s *Service) UpdateOrder(orderID string, details domain.Order) (domain.Order, error) {
	order, err := s.repo.Get(orderID)
	if err != nil {
		return domain.Order{}, fmt.Errorf("load order %s: %w", orderID, err)
	}

	order.Status = details.Status
	if err := s.repo.Save(order); err != nil {
		return domain.Order{}, fmt.Errorf("persist status: %w", err)
	}
	return order, nil
}

// DeleteOrder безусловно удаляет заказ вместе с позициями.
// Компенсация стока при удалении не выполняется.
func (s *Service) DeleteOrder(orderID string) error {
	order, err := s.repo.Get(orderID)
	if err != nil {
		return fmt.Errorf("load order %s: %w", orderID, err)
	}
	if err := s.repo.Delete(orderID); err != nil {
		return err
	}
	s.publishOrderEvent(kafka.EventTypeOrderDeleted, order, nil)
	return nil
}

func (s *Service) recordPlaceFailed() {
	if s.metrics != nil {
		s.metrics.RecordPlaceFailed()
	}
}

func (s *Service) recordStep(step string, start time.Time) {
	if s.metrics != nil {
		s.metrics.RecordStepDuration(step, time.Since(start))
	}
}

// publishOrderEvent публикует событие заказа в Kafka (если producer настроен)
func (s *Service) publishOrderEvent(eventType kafka.EventType, order domain.Order, metadata map[string]interface{}) {
	if s.producer == nil {
		return // Kafka не настроен, пропускаем
	}

	event := kafka.NewOrderEvent(eventType, order.ID, order.CustomerID, string(order.Status), metadata)
	if err := s.producer.PublishEvent(kafka.TopicOrderEvents, order.ID, event); err != nil {
		// Логируем ошибку, но не прерываем операцию - Kafka опциональный
		s.logger.WithError(err).WithFields(log.Fields{
			"event_type": eventType,
			"order_id":   order.ID,
		}).Warn("failed to publish order event to kafka")
	}
}
