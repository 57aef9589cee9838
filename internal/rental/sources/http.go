package sources

import (
	"bytes"
	"context"
	"fmt"
	"net/http"

	"github.com/sony/gobreaker"

	"github.com/i474232898/bike-rental-aggregation/internal/rental"
)

// HTTPSource downloads the dataset CSV from a URL.
type HTTPSource struct {
	url     string
	client  *http.Client
	backoff BackoffConfig
	circuit *gobreaker.CircuitBreaker
}

// NewHTTPSource creates an HTTPSource using DefaultBackoff.
func NewHTTPSource(client *http.Client, url string) *HTTPSource {
	return &HTTPSource{
		url:     url,
		client:  client,
		backoff: DefaultBackoff,
		circuit: newBreaker("dataset-http"),
	}
}

// WithBackoff returns a copy of s that retries according to b.
func (s *HTTPSource) WithBackoff(b BackoffConfig) *HTTPSource {
	cp := *s
	cp.backoff = b
	return &cp
}

func (s *HTTPSource) Name() string {
	return "http:" + s.url
}

func (s *HTTPSource) Load(ctx context.Context) (*rental.Dataset, error) {
	body, err := fetch(ctx, s.client, s.circuit, s.backoff, s.url)
	if err != nil {
		return nil, fmt.Errorf("download %s: %w", s.url, err)
	}
	records, err := DecodeCSV(bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	return rental.NewDataset(records)
}
