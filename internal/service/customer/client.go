package customer

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
	serviceName = "customer-directory"
	callTimeout = 5 * time.Second
)

// Client — HTTP-клиент справочника клиентов.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *log.Entry
}

// NewClient создаёт клиента справочника поверх базового URL сервиса.
func NewClient(baseURL string, logger *log.Entry) *Client {
	if logger == nil {
		logger = log.WithField("component", "customer-client")
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: callTimeout},
		logger:     logger,
	}
}

type customerResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// GetCustomer возвращает клиента по id или ErrCustomerNotFound на 404.
func (c *Client) GetCustomer(id string) (domain.Customer, error) {
	ctx, cancel := context.WithTimeout(context.Background(), callTimeout)
	defer cancel()

	endpoint := fmt.Sprintf("%s/customers/%s", c.baseURL, url.PathEscape(id))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return domain.Customer{}, &domain.CollaboratorError{Service: serviceName, Op: "get customer", Err: err}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.WithError(err).WithField("customer_id", id).Warn("customer lookup failed")
		return domain.Customer{}, &domain.CollaboratorError{Service: serviceName, Op: "get customer", Err: err}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return domain.Customer{}, fmt.Errorf("%w: id %s", domain.ErrCustomerNotFound, id)
	case resp.StatusCode != http.StatusOK:
		return domain.Customer{}, &domain.CollaboratorError{
			Service: serviceName,
			Op:      "get customer",
			Err:     fmt.Errorf("unexpected status %d", resp.StatusCode),
		}
	}

	var body customerResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return domain.Customer{}, &domain.CollaboratorError{Service: serviceName, Op: "decode customer", Err: err}
	}

	return domain.Customer{ID: body.ID, Name: body.Name, Email: body.Email}, nil
}

var _ domain.CustomerDirectory = (*Client)(nil)
