package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/angelmondragon/kitcart/pkg/logger"
	"github.com/angelmondragon/kitcart/pkg/metrics"
)

// DefaultNamespace prefixes every durable cart key.
const DefaultNamespace = "kitcart:cart"

// Store persists whole carts per session on top of a Storage.
type Store struct {
	storage   Storage
	namespace string
	logg      *logger.Logger
	metrics   *metrics.CartMetrics
}

// StoreOption customizes a Store.
type StoreOption func(*Store)

func WithStoreLogger(logg *logger.Logger) StoreOption {
	return func(s *Store) { s.logg = logg }
}

func WithStoreMetrics(m *metrics.CartMetrics) StoreOption {
	return func(s *Store) { s.metrics = m }
}

// NewStore builds a Store. An empty namespace falls back to DefaultNamespace.
func NewStore(storage Storage, namespace string, opts ...StoreOption) (*Store, error) {
	if storage == nil {
		return nil, errors.New("cart storage required")
	}
	namespace = strings.TrimRight(strings.TrimSpace(namespace), ":")
	if namespace == "" {
		namespace = DefaultNamespace
	}
	s := &Store{storage: storage, namespace: namespace}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Key returns the durable key holding the cart for sessionID.
func (s *Store) Key(sessionID string) string {
	return s.namespace + ":" + sessionID
}

// Fetch returns the persisted cart. Missing or malformed data yields an empty cart
// and no error; a failing storage read is returned so callers never write over a
// cart they could not see.
func (s *Store) Fetch(ctx context.Context, sessionID string) (Cart, error) {
	payload, err := s.storage.Get(ctx, s.Key(sessionID))
	if errors.Is(err, ErrNotFound) {
		return Empty(), nil
	}
	if err != nil {
		s.metrics.IncStorageFailure("load")
		return Empty(), fmt.Errorf("load cart: %w", err)
	}

	c, err := decodeCart(payload)
	if err != nil {
		s.metrics.IncLoadRecovery()
		if s.logg != nil {
			s.logg.Warn(s.logg.WithField(ctx, "reason", err.Error()), "cart.load_discarded")
		}
		return Empty(), nil
	}
	return c, nil
}

// Load is Fetch for read-only callers: storage failures are logged and an empty cart
// is returned.
func (s *Store) Load(ctx context.Context, sessionID string) Cart {
	c, err := s.Fetch(ctx, sessionID)
	if err != nil {
		s.logError(ctx, "cart.load_failed", err)
	}
	return c
}

// Save overwrites the persisted cart for sessionID.
func (s *Store) Save(ctx context.Context, sessionID string, c Cart) error {
	payload, err := encodeCart(c)
	if err != nil {
		return err
	}
	if err := s.storage.Set(ctx, s.Key(sessionID), payload); err != nil {
		s.metrics.IncStorageFailure("save")
		return fmt.Errorf("save cart: %w", err)
	}
	return nil
}

// Clear deletes the persisted record and returns an empty cart. The empty cart is
// returned even when the delete fails.
func (s *Store) Clear(ctx context.Context, sessionID string) (Cart, error) {
	if err := s.storage.Delete(ctx, s.Key(sessionID)); err != nil {
		s.metrics.IncStorageFailure("clear")
		return Empty(), fmt.Errorf("clear cart: %w", err)
	}
	return Empty(), nil
}

// Ping checks the underlying storage.
func (s *Store) Ping(ctx context.Context) error {
	return s.storage.Ping(ctx)
}

func (s *Store) logError(ctx context.Context, msg string, err error) {
	if s.logg == nil {
		return
	}
	s.logg.Error(ctx, msg, err)
}

func encodeCart(c Cart) ([]byte, error) {
	items := c.Items
	if items == nil {
		items = []LineItem{}
	}
	payload, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("encode cart: %w", err)
	}
	return payload, nil
}

func decodeCart(payload []byte) (Cart, error) {
	var items []LineItem
	if err := json.Unmarshal(payload, &items); err != nil {
		return Cart{}, fmt.Errorf("decode cart: %w", err)
	}
	if items == nil {
		// "null" decodes without error but is not a line-item sequence.
		return Cart{}, errors.New("decode cart: payload is not a list")
	}
	c := Cart{Items: items}
	if err := c.validate(); err != nil {
		return Cart{}, err
	}
	return c, nil
}

func invariantError(index int, msg string) error {
	return fmt.Errorf("line item %d: %s", index, msg)
}
