package inventory

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/fulfillment/internal/domain"
)

const (
	serviceName = "inventory"
	callTimeout = 5 * time.Second
)

// Client — HTTP-клиент складского сервиса.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *log.Entry
}

// NewClient создаёт клиента склада поверх базового URL сервиса.
func NewClient(baseURL string, logger *log.Entry) *Client {
	if logger == nil {
		logger = log.WithField("component", "inventory-client")
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: callTimeout},
		logger:     logger,
	}
}

// ReduceStock уменьшает остаток товара на qty единиц.
func (c *Client) ReduceStock(productID string, qty int32) error {
	return c.adjustStock("reduceStock", "reduce stock", productID, qty)
}

// IncreaseStock возвращает qty единиц товара на склад (компенсация отмены).
func (c *Client) IncreaseStock(productID string, qty int32) error {
	return c.adjustStock("increaseStock", "increase stock", productID, qty)
}

func (c *Client) adjustStock(action, op, productID string, qty int32) error {
	ctx, cancel := context.WithTimeout(context.Background(), callTimeout)
	defer cancel()

	endpoint := fmt.Sprintf("%s/products/%s/%s/%d", c.baseURL, url.PathEscape(productID), action, qty)
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, endpoint, nil)
	if err != nil {
		return &domain.CollaboratorError{Service: serviceName, Op: op, Err: err}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.WithError(err).WithFields(log.Fields{
			"product_id": productID,
			"qty":        qty,
		}).Warn("stock adjustment failed")
		return &domain.CollaboratorError{Service: serviceName, Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &domain.CollaboratorError{
			Service: serviceName,
			Op:      op,
			Err:     fmt.Errorf("unexpected status %d for product %s", resp.StatusCode, productID),
		}
	}
	return nil
}

var _ domain.InventoryService = (*Client)(nil)
