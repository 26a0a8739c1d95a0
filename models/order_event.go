package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// OrderEvent is an audit row recorded when an admin changes an order.
type OrderEvent struct {
	ID        uuid.UUID      `json:"id" gorm:"type:uuid;primaryKey"`
	OrderID   uuid.UUID      `json:"order_id" gorm:"type:uuid;not null;index:idx_order_events_order"`
	AdminID   uuid.UUID      `json:"admin_id" gorm:"type:uuid;not null"`
	Action    string         `json:"action" gorm:"not null"`
	Changes   datatypes.JSON `json:"changes" gorm:"type:jsonb"` // {before: {...}, after: {...}}
	CreatedAt time.Time      `json:"created_at" gorm:"autoCreateTime"`
}

func (e *OrderEvent) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.Must(uuid.NewV7())
	}
	return nil
}

func (OrderEvent) TableName() string {
	return "order_events"
}
