package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrOrderNotFound возвращается, если заказ не найден в репозитории.
	ErrOrderNotFound = errors.New("order not found")
	// ErrCustomerNotFound возвращается, если справочник клиентов не знает такой id.
	ErrCustomerNotFound = errors.New("customer not found")
	// ErrCartEmpty — попытка разместить заказ из пустой корзины.
	ErrCartEmpty = errors.New("cart is empty")
	// ErrOrderDelivered — попытка отменить уже доставленный заказ.
	ErrOrderDelivered = errors.New("cannot cancel delivered order")
	// ErrOrderInvalid помечает ошибки валидации при прямом создании заказа.
	ErrOrderInvalid = errors.New("invalid order")
	// Ошибка отсутствующего идентификатора клиента.
	ErrCustomerRequired = errors.New("customer_id is required")
	// Ошибка отсутствующего идентификатора товара в позиции.
	ErrItemProductRequired = errors.New("item product_id is required")
	// Ошибка при некорректном количестве товара (<= 0).
	ErrItemQtyInvalid = errors.New("item quantity must be greater than zero")
)

// CollaboratorError оборачивает ошибку удалённого вызова внешнего сервиса.
// Service — имя коллаборатора, Op — операция, во время которой случился сбой.
type CollaboratorError struct {
	Service string
	Op      string
	Err     error
}

func (e *CollaboratorError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Service, e.Op, e.Err)
}

func (e *CollaboratorError) Unwrap() error {
	return e.Err
}

// IsNotFound проверяет, является ли ошибка отсутствием сущности (заказ или клиент).
func IsNotFound(err error) bool {
	return errors.Is(err, ErrOrderNotFound) || errors.Is(err, ErrCustomerNotFound)
}

// IsInvalidState проверяет ошибки недопустимого состояния (пустая корзина, доставленный заказ).
func IsInvalidState(err error) bool {
	return errors.Is(err, ErrCartEmpty) || errors.Is(err, ErrOrderDelivered)
}

// IsValidation проверяет, является ли ошибка ошибкой валидации входного заказа.
func IsValidation(err error) bool {
	return errors.Is(err, ErrOrderInvalid)
}

// IsCollaboratorFailure проверяет, вызвана ли ошибка сбоем удалённого сервиса.
func IsCollaboratorFailure(err error) bool {
	var ce *CollaboratorError
	return errors.As(err, &ce)
}
