package catalogservice

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/patrickmn/go-cache"
)

// Client клиент для работы с CatalogService
type Client struct {
	baseURL    string
	httpClient *http.Client
	cache      *cache.Cache
	log        Logger
}

// NewClient создает новый экземпляр клиента CatalogService.
// Успешные ответы кэшируются на cacheTTL, чтобы не бить в каталог
// на каждый запрос доступности.
func NewClient(baseURL string, timeout, cacheTTL time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		cache: cache.New(cacheTTL, 2*cacheTTL),
		log:   log,
	}
}

// GetService получает услугу по ID
func (c *Client) GetService(ctx context.Context, serviceID int64) (*Service, error) {
	cacheKey := fmt.Sprintf("service:%d", serviceID)
	if cached, found := c.cache.Get(cacheKey); found {
		return cached.(*Service), nil
	}

	url := fmt.Sprintf("%s/internal/services/%d", c.baseURL, serviceID)

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

	// Обработка статус-кодов
	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusBadRequest:
		return nil, fmt.Errorf("%w: invalid service ID format", ErrInvalidResponse)
	case http.StatusNotFound:
		return nil, ErrServiceNotFound
	default:
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	// Парсим ответ
	var service Service
	if err := json.NewDecoder(resp.Body).Decode(&service); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	c.cache.SetDefault(cacheKey, &service)
	return &service, nil
}

// GetActiveService получает услугу и проверяет её доступность для записи
func (c *Client) GetActiveService(ctx context.Context, serviceID int64) (*Service, error) {
	service, err := c.GetService(ctx, serviceID)
	if err != nil {
		if err == ErrServiceNotFound {
			c.log.Info("Service not found in catalog: service_id=%d", serviceID)
			return nil, err
		}
		c.log.Error("CatalogService request failed for service_id=%d: %v", serviceID, err)
		return nil, err
	}

	if !service.IsActive {
		c.log.Info("Service is inactive: service_id=%d", serviceID)
		return nil, ErrServiceNotFound
	}

	return service, nil
}
