package bookingflow

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/go-querystring/query"
	"go.uber.org/zap"

	"churchcms/internal/domain"
)

const (
	DefaultClientTimeout = 15 * time.Second
	IdempotencyHeader    = "Idempotency-Key"
)

// ErrUnavailable wraps transport failures: the request never produced a
// response the client could read.
var ErrUnavailable = errors.New("failed to connect to the booking service")

// APIError is a response the server produced but rejected: a non-2xx status
// or a body with success=false.
type APIError struct {
	StatusCode int
	Message    string
	Errors     []string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if len(e.Errors) > 0 {
		return strings.Join(e.Errors, "; ")
	}
	return fmt.Sprintf("request failed with status %d", e.StatusCode)
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
	Errors  []string        `json:"errors"`
}

type counsellorsData struct {
	Counsellors []domain.Counsellor `json:"counsellors"`
}

type slotsData struct {
	AvailableSlots []domain.TimeSlot `json:"availableSlots"`
	Slots          []domain.TimeSlot `json:"slots"`
}

type slotQuery struct {
	CounsellorID string             `url:"counsellorId"`
	BookingType  domain.BookingType `url:"bookingType"`
}

// APIClient talks to the public booking endpoints.
type APIClient struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

type ClientOption func(*APIClient)

func WithHTTPClient(c *http.Client) ClientOption {
	return func(a *APIClient) {
		a.httpClient = c
	}
}

func WithClientLogger(logger *zap.Logger) ClientOption {
	return func(a *APIClient) {
		a.logger = logger
	}
}

// NewAPIClient targets baseURL, e.g. "https://church.example/api".
func NewAPIClient(baseURL string, opts ...ClientOption) *APIClient {
	c := &APIClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: DefaultClientTimeout},
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *APIClient) ListCounsellors(ctx context.Context) ([]domain.Counsellor, error) {
	var data counsellorsData
	if err := c.do(ctx, http.MethodGet, "/counsellors", nil, nil, &data); err != nil {
		return nil, err
	}
	return data.Counsellors, nil
}

func (c *APIClient) ListSlots(ctx context.Context, counsellorID string, bookingType domain.BookingType) ([]domain.TimeSlot, error) {
	values, err := query.Values(slotQuery{CounsellorID: counsellorID, BookingType: bookingType})
	if err != nil {
		return nil, fmt.Errorf("encode slot query: %w", err)
	}

	var data slotsData
	if err := c.do(ctx, http.MethodGet, "/counselling?"+values.Encode(), nil, nil, &data); err != nil {
		return nil, err
	}
	if data.AvailableSlots != nil {
		return data.AvailableSlots, nil
	}
	return data.Slots, nil
}

func (c *APIClient) CreateBooking(ctx context.Context, form domain.BookingFormData, idempotencyKey string) (*domain.BookingResult, error) {
	body, err := json.Marshal(form)
	if err != nil {
		return nil, fmt.Errorf("encode booking: %w", err)
	}

	headers := map[string]string{}
	if idempotencyKey != "" {
		headers[IdempotencyHeader] = idempotencyKey
	}

	var result domain.BookingResult
	if err := c.do(ctx, http.MethodPost, "/counselling", bytes.NewReader(body), headers, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *APIClient) do(ctx context.Context, method, path string, body io.Reader, headers map[string]string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("booking api request failed", zap.String("method", method), zap.String("path", path), zap.Error(err))
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: read response: %v", ErrUnavailable, err)
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return &APIError{StatusCode: resp.StatusCode}
		}
		return fmt.Errorf("decode response: %w", err)
	}

	if !env.Success || resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{StatusCode: resp.StatusCode, Message: env.Error, Errors: env.Errors}
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("decode response data: %w", err)
		}
	}
	return nil
}
