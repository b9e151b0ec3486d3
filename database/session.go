package database

import (
	"time"

	"gorm.io/gorm"
)

// LoginSession backs the session_id cookie. It is unrelated to
// AutomationSession.
type LoginSession struct {
	Model
	UserId uint      `gorm:"index"`
	User   User      `gorm:"foreignKey:UserId;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Token  string    `gorm:"column:token;uniqueIndex;type:varchar(128)"`
	Expiry time.Time `gorm:"column:expiry;index"`
}

func CreateLoginSession(DB *gorm.DB, user *User, token string, ttl time.Duration) (*LoginSession, error) {
	session := LoginSession{
		UserId: user.ID,
		Token:  token,
		Expiry: time.Now().Add(ttl),
	}
	if err := DB.Create(&session).Error; err != nil {
		return nil, err
	}
	return &session, nil
}

// GetLoginSession only returns sessions that have not expired yet.
func GetLoginSession(DB *gorm.DB, token string) (*LoginSession, error) {
	var session LoginSession
	err := DB.Preload("User").
		Where("token = ? AND expiry > ?", token, time.Now()).
		First(&session).Error
	if err != nil {
		return nil, translate(err)
	}
	return &session, nil
}

func DeleteLoginSession(DB *gorm.DB, token string) error {
	return DB.Unscoped().Where("token = ?", token).Delete(&LoginSession{}).Error
}

// PruneExpiredLoginSessions hard deletes expired cookie sessions and reports
// how many rows went away.
func PruneExpiredLoginSessions(DB *gorm.DB, now time.Time) (int64, error) {
	r := DB.Unscoped().Where("expiry <= ?", now).Delete(&LoginSession{})
	return r.RowsAffected, r.Error
}
