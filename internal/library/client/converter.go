package client

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// ============================================================
// Converter Client
// ============================================================

// UpstreamError: конвертер ответил статусом 4xx/5xx.
type UpstreamError struct {
	Status int
	Body   []byte
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("converter responded %d: %s", e.Status, string(e.Body))
}

type ConverterClient struct {
	http *resty.Client
}

func NewConverterClient(baseURL string, timeout time.Duration) *ConverterClient {
	return &ConverterClient{
		http: resty.New().
			SetBaseURL(baseURL).
			SetTimeout(timeout).
			SetHeader("Accept", "application/json"),
	}
}

// Convert отправляет архив на POST /convert и возвращает JSON нормализованного пресета.
func (c *ConverterClient) Convert(ctx context.Context, filename string, archive []byte) ([]byte, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetFileReader("file", filename, bytes.NewReader(archive)).
		Post("/convert")
	if err != nil {
		return nil, fmt.Errorf("call converter: %w", err)
	}
	if resp.IsError() {
		return nil, &UpstreamError{Status: resp.StatusCode(), Body: resp.Body()}
	}
	return resp.Body(), nil
}
