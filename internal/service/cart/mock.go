package cart

import "github.com/vladislavdragonenkov/fulfillment/internal/domain"

// MockService — конфигурируемая заглушка CartService для тестов.
type MockService struct {
	Items    map[string][]domain.CartItem
	GetErr   error
	ClearErr error

	GetCalls   []string
	ClearCalls []string
}

// NewMockService возвращает mock с пустыми корзинами.
func NewMockService() *MockService {
	return &MockService{Items: make(map[string][]domain.CartItem)}
}

// GetCart возвращает настроенную корзину и считает вызовы.
func (m *MockService) GetCart(customerID string) ([]domain.CartItem, error) {
	m.GetCalls = append(m.GetCalls, customerID)
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	return m.Items[customerID], nil
}

// ClearCart возвращает заранее настроенную ошибку и считает вызовы.
func (m *MockService) ClearCart(customerID string) error {
	m.ClearCalls = append(m.ClearCalls, customerID)
	if m.ClearErr != nil {
		return m.ClearErr
	}
	delete(m.Items, customerID)
	return nil
}

var _ domain.CartService = (*MockService)(nil)
