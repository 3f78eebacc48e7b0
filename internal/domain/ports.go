package domain

// Customer — транзитный снимок клиента из внешнего справочника; не персистится.
type Customer struct {
	ID    string
	Name  string
	Email string
}

// CartItem — транзитный снимок позиции корзины; не персистится.
type CartItem struct {
	ProductID string
	Quantity  int32
}

// CustomerDirectory описывает взаимодействие со справочником клиентов.
type CustomerDirectory interface {
	// GetCustomer возвращает клиента или ErrCustomerNotFound.
	GetCustomer(id string) (Customer, error)
}

// CartService описывает взаимодействие с держателем корзин.
type CartService interface {
	// GetCart возвращает содержимое корзины клиента (возможно пустое).
	GetCart(customerID string) ([]CartItem, error)
	// ClearCart очищает корзину клиента после размещения заказа.
	ClearCart(customerID string) error
}

// InventoryService описывает взаимодействие со складским сервисом.
type InventoryService interface {
	// ReduceStock уменьшает остаток товара на qty единиц.
	ReduceStock(productID string, qty int32) error
	// IncreaseStock возвращает qty единиц товара на склад (компенсация).
	IncreaseStock(productID string, qty int32) error
}
