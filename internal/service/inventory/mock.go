package inventory

import "github.com/vladislavdragonenkov/fulfillment/internal/domain"

// StockCall фиксирует один вызов изменения стока для проверок в тестах.
type StockCall struct {
	ProductID string
	Qty       int32
}

// MockService — конфигурируемая заглушка InventoryService для тестов.
type MockService struct {
	ReduceErr   error
	IncreaseErr error
	// FailProducts позволяет провалить reduce только для отдельных товаров.
	FailProducts map[string]error

	ReduceCalls   []StockCall
	IncreaseCalls []StockCall
}

// NewMockService возвращает mock с успешным сценарием по умолчанию.
func NewMockService() *MockService {
	return &MockService{FailProducts: make(map[string]error)}
}

// ReduceStock возвращает заранее настроенную ошибку и фиксирует вызов.
func (m *MockService) ReduceStock(productID string, qty int32) error {
	m.ReduceCalls = append(m.ReduceCalls, StockCall{ProductID: productID, Qty: qty})
	if err, ok := m.FailProducts[productID]; ok {
		return err
	}
	return m.ReduceErr
}

// IncreaseStock возвращает заранее настроенную ошибку и фиксирует вызов.
func (m *MockService) IncreaseStock(productID string, qty int32) error {
	m.IncreaseCalls = append(m.IncreaseCalls, StockCall{ProductID: productID, Qty: qty})
	return m.IncreaseErr
}

var _ domain.InventoryService = (*MockService)(nil)
