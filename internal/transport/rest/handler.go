package rest

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/fulfillment/internal/domain"
	"github.com/vladislavdragonenkov/fulfillment/internal/service/fulfillment"
)

// Handler отображает операции оркестратора на REST-маршруты.
type Handler struct {
	service *fulfillment.Service
	logger  *log.Entry
}

// NewHandler конструирует HTTP-обработчик поверх оркестратора.
func NewHandler(service *fulfillment.Service, logger *log.Entry) *Handler {
	if logger == nil {
		logger = log.WithField("component", "rest")
	}
	return &Handler{service: service, logger: logger}
}

// Routes собирает маршрутизатор заказов.
func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()

	r.Route("/orders", func(r chi.Router) {
		r.Post("/", h.addOrder)
		r.Get("/", h.listOrders)
		r.Get("/{id}", h.getOrder)
		r.Put("/{id}", h.updateOrder)
		r.Delete("/{id}", h.deleteOrder)

		r.Post("/place/{customerId}", h.placeOrder)
		r.Delete("/cancel/{orderId}", h.cancelOrder)
		r.Put("/{orderId}/status", h.updateStatus)
	})

	return r
}

type orderItemPayload struct {
	ProductID string `json:"productId"`
	Quantity  int32  `json:"quantity"`
}

type orderPayload struct {
	CustomerID string             `json:"customerId"`
	Status     string             `json:"status"`
	Items      []orderItemPayload `json:"items"`
}

type orderResponse struct {
	ID         string             `json:"id"`
	CustomerID string             `json:"customerId"`
	Status     string             `json:"status"`
	CreatedAt  time.Time          `json:"createdAt"`
	Items      []orderItemPayload `json:"items"`
}

func toOrderResponse(order domain.Order) orderResponse {
	items := make([]orderItemPayload, 0, len(order.Items))
	for _, it := range order.Items {
		items = append(items, orderItemPayload{ProductID: it.ProductID, Quantity: it.Quantity})
	}
	return orderResponse{
		ID:         order.ID,
		CustomerID: order.CustomerID,
		Status:     string(order.Status),
		CreatedAt:  order.CreatedAt,
		Items:      items,
	}
}

func (p orderPayload) toDomain() domain.Order {
	items := make([]domain.OrderItem, 0, len(p.Items))
	for _, it := range p.Items {
		items = append(items, domain.OrderItem{ProductID: it.ProductID, Quantity: it.Quantity})
	}
	return domain.Order{
		CustomerID: p.CustomerID,
		Status:     domain.OrderStatus(p.Status),
		Items:      items,
	}
}

func (h *Handler) addOrder(w http.ResponseWriter, r *http.Request) {
	var payload orderPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		h.writeMessage(w, http.StatusBadRequest, "invalid order payload")
		return
	}

	saved, err := h.service.AddOrder(payload.toDomain())
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, toOrderResponse(saved))
}

func (h *Handler) listOrders(w http.ResponseWriter, r *http.Request) {
	customerID := r.URL.Query().Get("customerId")

	var (
		orders []domain.Order
		err    error
	)
	if customerID != "" {
		limit := 0
		if raw := r.URL.Query().Get("limit"); raw != "" {
			if limit, err = strconv.Atoi(raw); err != nil || limit < 0 {
				h.writeMessage(w, http.StatusBadRequest, "invalid limit")
				return
			}
		}
		orders, err = h.service.ListCustomerOrders(customerID, limit)
	} else {
		orders, err = h.service.ListOrders()
	}
	if err != nil {
		h.writeError(w, err)
		return
	}

	result := make([]orderResponse, 0, len(orders))
	for _, order := range orders {
		result = append(result, toOrderResponse(order))
	}
	h.writeJSON(w, http.StatusOK, result)
}

func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	order, err := h.service.GetOrder(chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, toOrderResponse(order))
}

func (h *Handler) updateOrder(w http.ResponseWriter, r *http.Request) {
	var payload orderPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		h.writeMessage(w, http.StatusBadRequest, "invalid order payload")
		return
	}

	updated, err := h.service.UpdateOrder(chi.URLParam(r, "id"), payload.toDomain())
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, toOrderResponse(updated))
}

func (h *Handler) deleteOrder(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteOrder(chi.URLParam(r, "id")); err != nil {
		h.writeError(w, err)
		return
	}
	h.writeMessage(w, http.StatusOK, "Order deleted successfully!")
}

func (h *Handler) placeOrder(w http.ResponseWriter, r *http.Request) {
	order, err := h.service.PlaceOrder(chi.URLParam(r, "customerId"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, toOrderResponse(order))
}

func (h *Handler) cancelOrder(w http.ResponseWriter, r *http.Request) {
	if err := h.service.CancelOrder(chi.URLParam(r, "orderId")); err != nil {
		h.writeError(w, err)
		return
	}
	h.writeMessage(w, http.StatusOK, "Order cancelled!")
}

func (h *Handler) updateStatus(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	if status == "" {
		h.writeMessage(w, http.StatusBadRequest, "status query parameter is required")
		return
	}

	updated, err := h.service.UpdateOrderStatus(chi.URLParam(r, "orderId"), status)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, toOrderResponse(updated))
}

// writeError переводит доменную ошибку в различимую HTTP-категорию:
// not-found → 404, bad-request → 400, сбой коллаборатора → 502.
func (h *Handler) writeError(w http.ResponseWriter, err error) {
	switch {
	case domain.IsNotFound(err):
		h.writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
	case domain.IsInvalidState(err), domain.IsValidation(err):
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
	case domain.IsCollaboratorFailure(err):
		h.writeJSON(w, http.StatusBadGateway, map[string]string{"error": err.Error()})
	default:
		h.logger.WithError(err).Error("unhandled error")
		h.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
}

func (h *Handler) writeMessage(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{"message": message})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.WithError(err).Warn("encode response failed")
	}
}
