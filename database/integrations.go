package database

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// SessionIntegration is an external system the session's automation talks to.
// Names are unique inside a session.
type SessionIntegration struct {
	Model
	SessionId       uint              `gorm:"index"`
	Session         AutomationSession `gorm:"foreignKey:SessionId;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	IntegrationType IntegrationType   `gorm:"not null"`
	Name            string            `gorm:"index;not null"`
	Status          IntegrationStatus `gorm:"default:'pending'"`
	Config          datatypes.JSONMap
}

type IntegrationSpec struct {
	Type   IntegrationType
	Name   string
	Status IntegrationStatus
	Config map[string]interface{}
}

type IntegrationUpdate struct {
	Name   *string
	Status *IntegrationStatus
	Config map[string]interface{}
}

func (s IntegrationSpec) validate() error {
	if s.Name == "" {
		return fmt.Errorf("%w: integration name is required", ErrInvalidInput)
	}
	if !s.Type.Valid() {
		return fmt.Errorf("%w: unknown integration type %q", ErrInvalidInput, s.Type)
	}
	if s.Status != "" && !s.Status.Valid() {
		return fmt.Errorf("%w: unknown integration status %q", ErrInvalidInput, s.Status)
	}
	return nil
}

func integrationNameTaken(DB *gorm.DB, session *AutomationSession, name string, except uint) (bool, error) {
	var count int64
	q := DB.Model(&SessionIntegration{}).Where("session_id = ? AND name = ?", session.ID, name)
	if except != 0 {
		q = q.Where("id <> ?", except)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// CreateIntegration trims the name before validating it, so names that differ
// only by surrounding whitespace collide.
func CreateIntegration(DB *gorm.DB, session *AutomationSession, spec IntegrationSpec) (*SessionIntegration, error) {
	spec.Name = strings.TrimSpace(spec.Name)
	if err := spec.validate(); err != nil {
		return nil, err
	}
	taken, err := integrationNameTaken(DB, session, spec.Name, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrDuplicateName
	}

	status := spec.Status
	if status == "" {
		status = IntegrationPending
	}
	integration := SessionIntegration{
		SessionId:       session.ID,
		IntegrationType: spec.Type,
		Name:            spec.Name,
		Status:          status,
	}
	if spec.Config != nil {
		integration.Config = datatypes.JSONMap(spec.Config)
	}
	if err := DB.Create(&integration).Error; err != nil {
		return nil, err
	}
	if err := TouchSession(DB, session); err != nil {
		return nil, err
	}
	return &integration, nil
}

// CreateIntegrationsIfAbsent inserts every spec whose name is not yet used in
// the session, including names repeated within specs. Only the rows that were
// actually inserted are returned.
func CreateIntegrationsIfAbsent(DB *gorm.DB, session *AutomationSession, specs []IntegrationSpec) ([]SessionIntegration, error) {
	created := []SessionIntegration{}
	err := DB.Transaction(func(tx *gorm.DB) error {
		for _, spec := range specs {
			spec.Status = IntegrationPending
			integration, err := CreateIntegration(tx, session, spec)
			if errors.Is(err, ErrDuplicateName) {
				continue
			}
			if err != nil {
				return err
			}
			created = append(created, *integration)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func GetIntegration(DB *gorm.DB, session *AutomationSession, integrationUUID string) (*SessionIntegration, error) {
	var integration SessionIntegration
	err := DB.Where("uuid = ? AND session_id = ?", integrationUUID, session.ID).First(&integration).Error
	if err != nil {
		return nil, translate(err)
	}
	return &integration, nil
}

// UpdateIntegration accepts any status value in the enumeration; there is no
// enforced progression between them.
func UpdateIntegration(DB *gorm.DB, session *AutomationSession, integrationUUID string, update IntegrationUpdate) (*SessionIntegration, error) {
	integration, err := GetIntegration(DB, session, integrationUUID)
	if err != nil {
		return nil, err
	}

	changes := map[string]interface{}{}
	if update.Name != nil {
		name := strings.TrimSpace(*update.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: integration name is required", ErrInvalidInput)
		}
		taken, err := integrationNameTaken(DB, session, name, integration.ID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, ErrDuplicateName
		}
		changes["name"] = name
	}
	if update.Status != nil {
		if !update.Status.Valid() {
			return nil, fmt.Errorf("%w: unknown integration status %q", ErrInvalidInput, *update.Status)
		}
		changes["status"] = *update.Status
	}
	if update.Config != nil {
		changes["config"] = datatypes.JSONMap(update.Config)
	}

	if len(changes) > 0 {
		if err := DB.Model(integration).Updates(changes).Error; err != nil {
			return nil, err
		}
	}
	if err := TouchSession(DB, session); err != nil {
		return nil, err
	}
	return GetIntegration(DB, session, integrationUUID)
}

// DeleteIntegration hard deletes, config included.
func DeleteIntegration(DB *gorm.DB, session *AutomationSession, integrationUUID string) error {
	integration, err := GetIntegration(DB, session, integrationUUID)
	if err != nil {
		return err
	}
	if err := DB.Unscoped().Delete(integration).Error; err != nil {
		return err
	}
	return TouchSession(DB, session)
}

func ListIntegrations(DB *gorm.DB, session *AutomationSession) ([]SessionIntegration, error) {
	integrations := []SessionIntegration{}
	err := DB.Where("session_id = ?", session.ID).
		Order("created_at asc").
		Order("id asc").
		Find(&integrations).Error
	return integrations, err
}
