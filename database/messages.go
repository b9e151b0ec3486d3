package database

import (
	"fmt"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// SessionMessage is one entry of a session's conversation log. Messages are
// never edited; the only way they disappear is with their session.
type SessionMessage struct {
	Model
	SessionId uint              `gorm:"index"`
	Session   AutomationSession `gorm:"foreignKey:SessionId;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Role      Role              `gorm:"not null"`
	Content   string            `gorm:"not null"`
	Metadata  datatypes.JSONMap
}

func AppendMessage(
	DB *gorm.DB,
	session *AutomationSession,
	role Role,
	content string,
	metadata map[string]interface{},
) (*SessionMessage, error) {
	if !role.Valid() {
		return nil, fmt.Errorf("%w: unknown role %q", ErrInvalidInput, role)
	}

	message := SessionMessage{
		SessionId: session.ID,
		Role:      role,
		Content:   content,
	}
	if metadata != nil {
		message.Metadata = datatypes.JSONMap(metadata)
	}

	if err := DB.Create(&message).Error; err != nil {
		return nil, err
	}
	if err := TouchSession(DB, session); err != nil {
		return nil, err
	}
	return &message, nil
}

func ListMessages(DB *gorm.DB, session *AutomationSession) ([]SessionMessage, error) {
	messages := []SessionMessage{}
	err := DB.Where("session_id = ?", session.ID).
		Order("created_at asc").
		Order("id asc").
		Find(&messages).Error
	return messages, err
}

func CountUserMessages(DB *gorm.DB, session *AutomationSession) (int64, error) {
	var count int64
	err := DB.Model(&SessionMessage{}).
		Where("session_id = ? AND role = ?", session.ID, RoleUser).
		Count(&count).Error
	return count, err
}
