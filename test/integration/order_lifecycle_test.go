package integration

import (
	"errors"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/vladislavdragonenkov/fulfillment/internal/domain"
	"github.com/vladislavdragonenkov/fulfillment/internal/service/cart"
	"github.com/vladislavdragonenkov/fulfillment/internal/service/customer"
	"github.com/vladislavdragonenkov/fulfillment/internal/service/fulfillment"
	"github.com/vladislavdragonenkov/fulfillment/internal/service/inventory"
	"github.com/vladislavdragonenkov/fulfillment/internal/storage/memory"
)

// OrderLifecycleTestSuite гоняет полный жизненный цикл заказа через сервис
// с in-memory хранилищем и mock-коллабораторами.
type OrderLifecycleTestSuite struct {
	suite.Suite
	service   *fulfillment.Service
	repo      domain.OrderRepository
	customers *customer.MockService
	carts     *cart.MockService
	inventory *inventory.MockService
}

func (suite *OrderLifecycleTestSuite) SetupTest() {
	baseLogger := log.New()
	baseLogger.SetLevel(log.WarnLevel) // Уменьшаем шум в тестах
	logger := baseLogger.WithField("component", "integration-test")

	suite.repo = memory.NewOrderRepository()
	suite.customers = customer.NewMockService()
	suite.carts = cart.NewMockService()
	suite.inventory = inventory.NewMockService()

	suite.service = fulfillment.NewServiceWithoutMetrics(
		suite.repo,
		suite.customers,
		suite.carts,
		suite.inventory,
		logger,
	)
}

func (suite *OrderLifecycleTestSuite) seedCustomerWithCart(customerID string, items ...domain.CartItem) {
	suite.customers.Customers[customerID] = domain.Customer{
		ID:    customerID,
		Name:  "Test Customer",
		Email: "customer@example.com",
	}
	suite.carts.Items[customerID] = items
}

func (suite *OrderLifecycleTestSuite) TestSuccessfulOrderLifecycle() {
	suite.seedCustomerWithCart("customer-123",
		domain.CartItem{ProductID: "laptop-pro", Quantity: 1},
		domain.CartItem{ProductID: "mouse-wireless", Quantity: 2},
	)

	// 1. Размещаем заказ из корзины.
	order, err := suite.service.PlaceOrder("customer-123")
	require.NoError(suite.T(), err)
	require.NotEmpty(suite.T(), order.ID)
	require.Equal(suite.T(), domain.OrderStatusPlaced, order.Status)
	require.Len(suite.T(), order.Items, 2)

	// Сток списан по каждой позиции, корзина очищена.
	require.Len(suite.T(), suite.inventory.ReduceCalls, 2)
	require.Empty(suite.T(), suite.carts.Items["customer-123"])

	// 2. Подтверждаем заказ.
	confirmed, err := suite.service.UpdateOrderStatus(order.ID, string(domain.OrderStatusConfirmed))
	require.NoError(suite.T(), err)
	require.Equal(suite.T(), domain.OrderStatusConfirmed, confirmed.Status)

	// 3. Доставляем.
	delivered, err := suite.service.UpdateOrderStatus(order.ID, string(domain.OrderStatusDelivered))
	require.NoError(suite.T(), err)
	require.Equal(suite.T(), domain.OrderStatusDelivered, delivered.Status)

	// 4. Отмена доставленного заказа запрещена.
	err = suite.service.CancelOrder(order.ID)
	require.Error(suite.T(), err)
	require.True(suite.T(), domain.IsInvalidState(err))

	// Статус не изменился, компенсация не запускалась.
	got, err := suite.service.GetOrder(order.ID)
	require.NoError(suite.T(), err)
	require.Equal(suite.T(), domain.OrderStatusDelivered, got.Status)
	require.Empty(suite.T(), suite.inventory.IncreaseCalls)
}

func (suite *OrderLifecycleTestSuite) TestCancelRestoresStock() {
	suite.seedCustomerWithCart("customer-7",
		domain.CartItem{ProductID: "product-10", Quantity: 3},
	)

	order, err := suite.service.PlaceOrder("customer-7")
	require.NoError(suite.T(), err)

	require.NoError(suite.T(), suite.service.CancelOrder(order.ID))

	cancelled, err := suite.service.GetOrder(order.ID)
	require.NoError(suite.T(), err)
	require.Equal(suite.T(), domain.OrderStatusCancelled, cancelled.Status)

	require.Len(suite.T(), suite.inventory.IncreaseCalls, 1)
	require.Equal(suite.T(), inventory.StockCall{ProductID: "product-10", Qty: 3}, suite.inventory.IncreaseCalls[0])
}

func (suite *OrderLifecycleTestSuite) TestPlaceFailureLeavesPartialReduction() {
	suite.seedCustomerWithCart("customer-9",
		domain.CartItem{ProductID: "product-ok", Quantity: 1},
		domain.CartItem{ProductID: "product-bad", Quantity: 1},
	)
	suite.inventory.FailProducts["product-bad"] = &domain.CollaboratorError{
		Service: "inventory",
		Op:      "reduce stock",
		Err:     errors.New("out of stock"),
	}

	_, err := suite.service.PlaceOrder("customer-9")
	require.Error(suite.T(), err)

	// Заказ не сохранён, но списание первой позиции осталось.
	orders, err := suite.service.ListOrders()
	require.NoError(suite.T(), err)
	require.Empty(suite.T(), orders)
	require.Len(suite.T(), suite.inventory.ReduceCalls, 2)
	require.Empty(suite.T(), suite.inventory.IncreaseCalls)

	// Корзина тоже не тронута.
	require.Len(suite.T(), suite.carts.Items["customer-9"], 2)
}

func (suite *OrderLifecycleTestSuite) TestDirectCRUDFlow() {
	created, err := suite.service.AddOrder(domain.Order{
		CustomerID: "customer-55",
		Status:     domain.OrderStatusPlaced,
		Items:      []domain.OrderItem{{ProductID: "product-1", Quantity: 1}},
	})
	require.NoError(suite.T(), err)
	require.NotEmpty(suite.T(), created.ID)

	listed, err := suite.service.ListCustomerOrders("customer-55", 0)
	require.NoError(suite.T(), err)
	require.Len(suite.T(), listed, 1)

	updated, err := suite.service.UpdateOrder(created.ID, domain.Order{Status: domain.OrderStatusConfirmed})
	require.NoError(suite.T(), err)
	require.Equal(suite.T(), domain.OrderStatusConfirmed, updated.Status)

	require.NoError(suite.T(), suite.service.DeleteOrder(created.ID))

	_, err = suite.service.GetOrder(created.ID)
	require.True(suite.T(), domain.IsNotFound(err))

	// Удаление не трогает сток.
	require.Empty(suite.T(), suite.inventory.IncreaseCalls)
}

func TestOrderLifecycleTestSuite(t *testing.T) {
	suite.Run(t, new(OrderLifecycleTestSuite))
}
