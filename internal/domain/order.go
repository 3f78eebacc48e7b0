package domain

import "time"

// OrderStatus описывает жизненный цикл заказа в сервисе фулфилмента.
type OrderStatus string

const (
	// OrderStatusPlaced — заказ собран из корзины и размещён.
	OrderStatusPlaced OrderStatus = "PLACED"
	// OrderStatusConfirmed — заказ подтверждён и передан в исполнение.
	OrderStatusConfirmed OrderStatus = "CONFIRMED"
	// OrderStatusCancelled — заказ отменён; сток возвращён на склад.
	OrderStatusCancelled OrderStatus = "CANCELLED"
	// OrderStatusDelivered — заказ доставлен; отмена невозможна.
	OrderStatusDelivered OrderStatus = "DELIVERED"
)

// OrderItem представляет одну позицию заказа.
// Позиция принадлежит ровно одному заказу и не живёт дольше него.
type OrderItem struct {
	// ID позиции нужен для однозначной идентификации и аудита.
	ID string
	// OrderID — обратная ссылка на заказ-владелец (только для каскада и выборок).
	OrderID string
	// ProductID — внешний идентификатор товара.
	ProductID string
	// Quantity — количество единиц, зарезервированных на складе под эту позицию.
	Quantity int32
}

// Order агрегирует состояние заказа и его позиции.
type Order struct {
	ID         string
	CustomerID string
	Status     OrderStatus
	CreatedAt  time.Time
	Items      []OrderItem
}

// ValidateInvariants проверяет базовые инварианты заказа и возвращает список замечаний.
func (o *Order) ValidateInvariants() []error {
	var errs []error

	if o.CustomerID == "" {
		errs = append(errs, ErrCustomerRequired)
	}

	for _, item := range o.Items {
		if item.ProductID == "" {
			errs = append(errs, ErrItemProductRequired)
		}
		if item.Quantity <= 0 {
			errs = append(errs, ErrItemQtyInvalid)
		}
	}

	return errs
}
