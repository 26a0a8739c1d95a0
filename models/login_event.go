package models

import (
	"time"

	"github.com/google/uuid"
)

// LoginEvent is an analytics row written with raw SQL on login; the model
// exists for schema migration and reporting reads.
type LoginEvent struct {
	ID         uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	UserID     uuid.UUID `json:"user_id" gorm:"type:uuid;not null;index:idx_login_events_user"`
	LoggedInAt time.Time `json:"logged_in_at" gorm:"not null"`
	IPAddress  string    `json:"ip_address"`
	UserAgent  string    `json:"user_agent"`
	DeviceType string    `json:"device_type"`
}

func (LoginEvent) TableName() string {
	return "login_events"
}
