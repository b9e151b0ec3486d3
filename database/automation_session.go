package database

import (
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type AutomationSession struct {
	Model
	UserId      uint          `gorm:"index"`
	User        User          `gorm:"foreignKey:UserId;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	AgentType   AgentType     `gorm:"index;not null"`
	Title       string        `gorm:"not null"`
	Description *string
	Status      SessionStatus  `gorm:"default:'active'"`
	Metadata    datatypes.JSON `gorm:"not null"`
}

// SessionDetail is a session with everything hanging off it.
type SessionDetail struct {
	Session      AutomationSession
	Metadata     SessionMetadata
	Messages     []SessionMessage
	Integrations []SessionIntegration
	Automations  []Automation
}

type SessionUpdate struct {
	Title       *string
	Description *string
	Status      *SessionStatus
}

func DefaultSessionTitle(agentType AgentType) string {
	return fmt.Sprintf("New %s session", agentType)
}

// CreateAutomationSession stores a new session with empty metadata. A non
// empty initialMessage is appended as the first user message.
func CreateAutomationSession(
	DB *gorm.DB,
	owner *User,
	agentType AgentType,
	title string,
	description *string,
	initialMessage string,
) (*AutomationSession, error) {
	if !agentType.Valid() {
		return nil, fmt.Errorf("%w: unknown agent type %q", ErrInvalidInput, agentType)
	}
	if title == "" {
		title = DefaultSessionTitle(agentType)
	}

	metadata, err := EmptyMetadata().Encode()
	if err != nil {
		return nil, err
	}

	session := AutomationSession{
		UserId:      owner.ID,
		AgentType:   agentType,
		Title:       title,
		Description: description,
		Status:      SessionActive,
		Metadata:    metadata,
	}

	err = DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&session).Error; err != nil {
			return err
		}
		if initialMessage == "" {
			return nil
		}
		_, err := AppendMessage(tx, &session, RoleUser, initialMessage, nil)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func ListAutomationSessions(DB *gorm.DB, owner *User) ([]AutomationSession, error) {
	var sessions []AutomationSession
	err := DB.Where("user_id = ?", owner.ID).
		Order("updated_at desc").
		Order("id desc").
		Find(&sessions).Error
	return sessions, err
}

// GetOwnedSession is the ownership gate every session route goes through.
// Missing and foreign sessions both come back as ErrNotFound.
func GetOwnedSession(DB *gorm.DB, owner *User, sessionUUID string) (*AutomationSession, error) {
	var session AutomationSession
	err := DB.Where("uuid = ? AND user_id = ?", sessionUUID, owner.ID).First(&session).Error
	if err != nil {
		return nil, translate(err)
	}
	return &session, nil
}

func LoadSessionDetail(DB *gorm.DB, owner *User, sessionUUID string) (*SessionDetail, error) {
	session, err := GetOwnedSession(DB, owner, sessionUUID)
	if err != nil {
		return nil, err
	}

	detail := SessionDetail{
		Session:  *session,
		Metadata: DecodeSessionMetadata(session.Metadata),
	}
	if detail.Messages, err = ListMessages(DB, session); err != nil {
		return nil, err
	}
	if detail.Integrations, err = ListIntegrations(DB, session); err != nil {
		return nil, err
	}
	if detail.Automations, err = ListAutomations(DB, session); err != nil {
		return nil, err
	}
	return &detail, nil
}

func UpdateAutomationSession(DB *gorm.DB, owner *User, sessionUUID string, update SessionUpdate) (*AutomationSession, error) {
	session, err := GetOwnedSession(DB, owner, sessionUUID)
	if err != nil {
		return nil, err
	}

	changes := map[string]interface{}{}
	if update.Title != nil {
		if *update.Title == "" {
			return nil, fmt.Errorf("%w: title must not be empty", ErrInvalidInput)
		}
		changes["title"] = *update.Title
	}
	if update.Description != nil {
		changes["description"] = *update.Description
	}
	if update.Status != nil {
		if !update.Status.Valid() {
			return nil, fmt.Errorf("%w: unknown session status %q", ErrInvalidInput, *update.Status)
		}
		changes["status"] = *update.Status
	}

	if len(changes) == 0 {
		return session, TouchSession(DB, session)
	}
	if err := DB.Model(session).Updates(changes).Error; err != nil {
		return nil, err
	}
	return GetOwnedSession(DB, owner, sessionUUID)
}

// DeleteAutomationSession removes the session and all of its children in
// one transaction. The rows are deleted for good, not soft deleted, so no
// conversation text or generated code outlives the session.
func DeleteAutomationSession(DB *gorm.DB, owner *User, sessionUUID string) (*AutomationSession, error) {
	session, err := GetOwnedSession(DB, owner, sessionUUID)
	if err != nil {
		return nil, err
	}

	err = DB.Transaction(func(tx *gorm.DB) error {
		for _, child := range []interface{}{&SessionMessage{}, &SessionIntegration{}, &Automation{}} {
			if err := tx.Unscoped().Where("session_id = ?", session.ID).Delete(child).Error; err != nil {
				return err
			}
		}
		return tx.Unscoped().Delete(session).Error
	})
	if err != nil {
		return nil, err
	}
	return session, nil
}

// TouchSession bumps updated_at. Called after every write below a session.
func TouchSession(DB *gorm.DB, session *AutomationSession) error {
	now := time.Now()
	if err := DB.Model(session).UpdateColumn("updated_at", now).Error; err != nil {
		return err
	}
	session.UpdatedAt = now
	return nil
}

// ApplyExtractedMetadata replaces the four extracted lists and keeps every
// other key that is already stored.
func ApplyExtractedMetadata(
	DB *gorm.DB,
	session *AutomationSession,
	requirements, constraints, techStack []string,
	databases []DatabaseSpec,
) (SessionMetadata, error) {
	metadata := DecodeSessionMetadata(session.Metadata)
	metadata.Requirements = requirements
	metadata.Constraints = constraints
	metadata.TechStack = techStack
	metadata.Databases = databases

	blob, err := metadata.Encode()
	if err != nil {
		return metadata, err
	}
	now := time.Now()
	err = DB.Model(session).UpdateColumns(map[string]interface{}{
		"metadata":   blob,
		"updated_at": now,
	}).Error
	if err != nil {
		return metadata, err
	}
	session.Metadata = blob
	session.UpdatedAt = now
	return metadata, nil
}
