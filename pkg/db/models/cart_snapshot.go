package models

import "time"

// CartSnapshot stores the serialized line items of one cart session.
type CartSnapshot struct {
	Key       string    `gorm:"column:snapshot_key;type:varchar(255);primaryKey"`
	Payload   string    `gorm:"column:payload;type:text;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (CartSnapshot) TableName() string {
	return "cart_snapshots"
}
