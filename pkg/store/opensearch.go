package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/opensearch-project/opensearch-go/v2"
)

// OpenSearchStore indexes one document per payload.
type OpenSearchStore struct {
	client *opensearch.Client
	index  string
	now    func() time.Time
}

type indexedTask struct {
	Data      json.RawMessage `json:"data"`
	CreatedAt time.Time       `json:"created_at"`
}

func NewOpenSearchStore(client *opensearch.Client, index string) *OpenSearchStore {
	return &OpenSearchStore{client: client, index: index, now: time.Now}
}

func (s *OpenSearchStore) Store(ctx context.Context, payload json.RawMessage) error {
	body, err := json.Marshal(indexedTask{Data: payload, CreatedAt: s.now().UTC()})
	if err != nil {
		return errors.Join(ErrStoreFailed, err)
	}

	res, err := s.client.Index(s.index, bytes.NewReader(body), s.client.Index.WithContext(ctx))
	if err != nil {
		return errors.Join(ErrStoreFailed, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		msg, _ := io.ReadAll(io.LimitReader(res.Body, 1024))
		return errors.Join(ErrStoreFailed, fmt.Errorf("index %q: status %d: %s", s.index, res.StatusCode, msg))
	}
	_, _ = io.Copy(io.Discard, res.Body)
	return nil
}

func (s *OpenSearchStore) Healthcheck(ctx context.Context) error {
	res, err := s.client.Info(s.client.Info.WithContext(ctx))
	if err != nil {
		return errors.Join(ErrHealthcheckFailed, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return errors.Join(ErrHealthcheckFailed, fmt.Errorf("status %d", res.StatusCode))
	}
	return nil
}

// Close is a no-op: the client holds no connections beyond its HTTP transport.
func (s *OpenSearchStore) Close(context.Context) error {
	return nil
}

// ConnectOpenSearch creates a client and waits until the cluster answers.
func ConnectOpenSearch(ctx context.Context, cfg OpenSearchConfig) (*opensearch.Client, error) {
	if len(cfg.Addresses) == 0 {
		return nil, fmt.Errorf("%w: OPENSEARCH_ADDRESSES is required", ErrInvalidConfig)
	}

	client, err := opensearch.NewClient(opensearch.Config{
		Addresses:    cfg.Addresses,
		Username:     cfg.Username,
		Password:     cfg.Password,
		MaxRetries:   cfg.MaxRetries,
		DisableRetry: cfg.DisableRetry,
	})
	if err != nil {
		return nil, errors.Join(ErrInvalidConfig, err)
	}

	probe := NewOpenSearchStore(client, cfg.Index)
	if err := withRetry(ctx, cfg.RetryAttempts, cfg.RetryInterval, probe.Healthcheck); err != nil {
		return nil, errors.Join(ErrConnectFailed, err)
	}

	return client, nil
}
