package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/fulfillment/internal/domain"
)

const (
	serviceName = "cart"
	callTimeout = 5 * time.Second
)

// Client — HTTP-клиент держателя корзин.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *log.Entry
}

// NewClient создаёт клиента корзины поверх базового URL сервиса.
func NewClient(baseURL string, logger *log.Entry) *Client {
	if logger == nil {
		logger = log.WithField("component", "cart-client")
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: callTimeout},
		logger:     logger,
	}
}

type cartItemResponse struct {
	ProductID string `json:"productId"`
	Quantity  int32  `json:"quantity"`
}

// GetCart возвращает снимок корзины клиента; пустая корзина — валидный ответ.
func (c *Client) GetCart(customerID string) ([]domain.CartItem, error) {
	ctx, cancel := context.WithTimeout(context.Background(), callTimeout)
	defer cancel()

	endpoint := fmt.Sprintf("%s/customers/%s/cart", c.baseURL, url.PathEscape(customerID))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, &domain.CollaboratorError{Service: serviceName, Op: "get cart", Err: err}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.WithError(err).WithField("customer_id", customerID).Warn("cart fetch failed")
		return nil, &domain.CollaboratorError{Service: serviceName, Op: "get cart", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &domain.CollaboratorError{
			Service: serviceName,
			Op:      "get cart",
			Err:     fmt.Errorf("unexpected status %d", resp.StatusCode),
		}
	}

	var body []cartItemResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, &domain.CollaboratorError{Service: serviceName, Op: "decode cart", Err: err}
	}

	items := make([]domain.CartItem, 0, len(body))
	for _, it := range body {
		items = append(items, domain.CartItem{ProductID: it.ProductID, Quantity: it.Quantity})
	}
	return items, nil
}

// ClearCart очищает корзину клиента после размещения заказа.
func (c *Client) ClearCart(customerID string) error {
	ctx, cancel := context.WithTimeout(context.Background(), callTimeout)
	defer cancel()

	endpoint := fmt.Sprintf("%s/customers/%s/cart/clear", c.baseURL, url.PathEscape(customerID))
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, endpoint, nil)
	if err != nil {
		return &domain.CollaboratorError{Service: serviceName, Op: "clear cart", Err: err}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.WithError(err).WithField("customer_id", customerID).Warn("cart clear failed")
		return &domain.CollaboratorError{Service: serviceName, Op: "clear cart", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &domain.CollaboratorError{
			Service: serviceName,
			Op:      "clear cart",
			Err:     fmt.Errorf("unexpected status %d", resp.StatusCode),
		}
	}
	return nil
}

var _ domain.CartService = (*Client)(nil)
