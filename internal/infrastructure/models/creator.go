package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

type Creator struct {
	ID          uuid.UUID   `gorm:"type:uuid;primaryKey"`
	Name        string      `gorm:"type:text;not null"`
	URL         string      `gorm:"column:url;type:text;not null"`
	Description string      `gorm:"type:text;not null"`
	ImageURL    null.String `gorm:"column:imageURL;type:text"`
	CreatedAt   time.Time   `gorm:"not null;index:idx_creators_created_at,sort:desc"`
}

func (Creator) TableName() string {
	return "creators"
}
