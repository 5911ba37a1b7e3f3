package notifyservice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client клиент для работы с NotifyService.
// Уведомления не критичны для бизнес-операций: вызывающий код логирует
// ошибку и продолжает работу, таймаут клиента ограничивает время ожидания.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента NotifyService
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// SendReminder отправляет клиенту напоминание о записи (за 24 часа или за 1 час)
func (c *Client) SendReminder(ctx context.Context, payload ReminderPayload) error {
	return c.doPost(ctx, "/internal/notifications/reminder", payload)
}

// SendCancellation уведомляет клиента об отмене записи
func (c *Client) SendCancellation(ctx context.Context, payload CancellationPayload) error {
	return c.doPost(ctx, "/internal/notifications/cancellation", payload)
}

// SendReviewRequest отправляет клиенту приглашение оставить отзыв
func (c *Client) SendReviewRequest(ctx context.Context, payload ReviewRequestPayload) error {
	return c.doPost(ctx, "/internal/notifications/review-request", payload)
}

func (c *Client) doPost(ctx context.Context, path string, payload interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("%w: failed to marshal payload: %v", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusAccepted {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrSendFailed, resp.StatusCode, string(respBody))
	}

	return nil
}
