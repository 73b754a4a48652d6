package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/angelmondragon/kitcart/pkg/db"
	"github.com/angelmondragon/kitcart/pkg/db/models"
	"gorm.io/gorm"
)

// SnapshotStorage keeps cart snapshots in the cart_snapshots table.
type SnapshotStorage struct {
	client *db.Client
}

func NewSnapshotStorage(client *db.Client) *SnapshotStorage {
	return &SnapshotStorage{client: client}
}

func (s *SnapshotStorage) Get(ctx context.Context, key string) ([]byte, error) {
	var row models.CartSnapshot
	err := s.client.DB().WithContext(ctx).
		Where("snapshot_key = ?", key).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}
	return []byte(row.Payload), nil
}

// Set overwrites the snapshot for key. Save inserts when no row matches the primary key.
func (s *SnapshotStorage) Set(ctx context.Context, key string, payload []byte) error {
	row := models.CartSnapshot{Key: key, Payload: string(payload)}
	if err := s.client.DB().WithContext(ctx).Save(&row).Error; err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

func (s *SnapshotStorage) Delete(ctx context.Context, key string) error {
	err := s.client.DB().WithContext(ctx).
		Where("snapshot_key = ?", key).
		Delete(&models.CartSnapshot{}).Error
	if err != nil {
		return fmt.Errorf("delete snapshot: %w", err)
	}
	return nil
}

func (s *SnapshotStorage) Ping(ctx context.Context) error {
	return s.client.Ping(ctx)
}
