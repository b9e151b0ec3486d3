package database

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
	"time"
)

// Model is embedded by every table. UUID is the only identifier ever handed
// out over the API; ID stays internal and is used for foreign keys.
type Model struct {
	UUID      string         `gorm:"type:uuid;uniqueIndex" json:"uuid"`
	ID        uint           `gorm:"primarykey" json:"-"`
	CreatedAt time.Time      `json:"-"`
	UpdatedAt time.Time      `json:"-" gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (b *Model) BeforeCreate(tx *gorm.DB) (err error) {
	if b.UUID == "" {
		b.UUID = uuid.New().String()
	}
	return
}
