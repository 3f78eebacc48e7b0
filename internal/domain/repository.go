package domain

// OrderRepository описывает требования к хранилищу заказов.
type OrderRepository interface {
	// Create сохраняет новый заказ. Хранилище назначает ID и CreatedAt,
	// если они не заданы, и возвращает сохранённую копию.
	Create(order Order) (Order, error)
	// Get возвращает заказ по идентификатору или ErrOrderNotFound, если его нет.
	Get(id string) (Order, error)
	// List возвращает все заказы, отсортированные по дате создания (новые первыми).
	List() ([]Order, error)
	// ListByCustomer возвращает заказы клиента с опциональным ограничением на количество.
	ListByCustomer(customerID string, limit int) ([]Order, error)
	// Save применяет обновления к существующему заказу.
	Save(order Order) error
	// Delete удаляет заказ вместе с позициями (каскад) или возвращает ErrOrderNotFound.
	Delete(id string) error
}
