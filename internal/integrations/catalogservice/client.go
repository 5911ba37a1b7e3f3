package catalogservice

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// Client клиент для работы с CatalogService (салоны, мастера, услуги, цены)
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента CatalogService
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetMaster получает мастера по ID
func (c *Client) GetMaster(ctx context.Context, masterID uuid.UUID) (*Master, error) {
	url := fmt.Sprintf("%s/internal/masters/%s", c.baseURL, masterID)

	var master Master
	if err := c.doGet(ctx, url, &master, ErrMasterNotFound); err != nil {
		return nil, err
	}

	return &master, nil
}

// GetService получает услугу по ID
func (c *Client) GetService(ctx context.Context, serviceID uuid.UUID) (*Service, error) {
	url := fmt.Sprintf("%s/internal/services/%s", c.baseURL, serviceID)

	var service Service
	if err := c.doGet(ctx, url, &service, ErrServiceNotFound); err != nil {
		return nil, err
	}

	return &service, nil
}

// GetBranch получает филиал по ID
func (c *Client) GetBranch(ctx context.Context, branchID uuid.UUID) (*Branch, error) {
	url := fmt.Sprintf("%s/internal/branches/%s", c.baseURL, branchID)

	var branch Branch
	if err := c.doGet(ctx, url, &branch, ErrBranchNotFound); err != nil {
		return nil, err
	}

	return &branch, nil
}

// GetPriceOverride получает индивидуальную цену мастера на услугу.
// Возвращает nil без ошибки, если override не задан: в этом случае
// действует базовая цена услуги.
func (c *Client) GetPriceOverride(ctx context.Context, masterID, serviceID uuid.UUID) (*float64, error) {
	url := fmt.Sprintf("%s/internal/masters/%s/services/%s/price", c.baseURL, masterID, serviceID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusNotFound:
		// Отсутствие override - штатная ситуация
		return nil, nil
	default:
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	var override PriceOverride
	if err := json.NewDecoder(resp.Body).Decode(&override); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return &override.Price, nil
}

// doGet выполняет GET запрос с маппингом 404 на notFoundErr
func (c *Client) doGet(ctx context.Context, url string, dest interface{}, notFoundErr error) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusBadRequest:
		return fmt.Errorf("%w: invalid ID format", ErrInvalidResponse)
	case http.StatusNotFound:
		return notFoundErr
	default:
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return nil
}
