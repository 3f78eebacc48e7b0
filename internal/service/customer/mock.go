package customer

import (
	"fmt"

	"github.com/vladislavdragonenkov/fulfillment/internal/domain"
)

// MockService — конфигурируемая заглушка CustomerDirectory для тестов.
type MockService struct {
	Customers map[string]domain.Customer
	GetErr    error

	GetCalls []string
}

// NewMockService возвращает mock с пустым справочником.
func NewMockService() *MockService {
	return &MockService{Customers: make(map[string]domain.Customer)}
}

// GetCustomer возвращает клиента из настроенного справочника и считает вызовы.
func (m *MockService) GetCustomer(id string) (domain.Customer, error) {
	m.GetCalls = append(m.GetCalls, id)
	if m.GetErr != nil {
		return domain.Customer{}, m.GetErr
	}
	c, ok := m.Customers[id]
	if !ok {
		return domain.Customer{}, fmt.Errorf("%w: id %s", domain.ErrCustomerNotFound, id)
	}
	return c, nil
}

var _ domain.CustomerDirectory = (*MockService)(nil)
