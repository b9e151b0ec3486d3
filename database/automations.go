package database

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Automation is a generated code artifact. After creation the only mutation
// is the move to downloaded, which is never reverted.
type Automation struct {
	Model
	SessionId         uint              `gorm:"index"`
	Session           AutomationSession `gorm:"foreignKey:SessionId;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Name              string            `gorm:"not null"`
	Description       *string
	Language          Language `gorm:"not null"`
	Code              string   `gorm:"not null"`
	Dependencies      datatypes.JSONSlice[string]
	SetupInstructions *string
	Status            AutomationStatus `gorm:"default:'draft'"`
}

type AutomationSpec struct {
	Name              string
	Description       string
	Language          Language
	Code              string
	Dependencies      []string
	SetupInstructions string
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// CreateAutomations persists every artifact with status ready.
func CreateAutomations(DB *gorm.DB, session *AutomationSession, specs []AutomationSpec) ([]Automation, error) {
	automations := make([]Automation, 0, len(specs))
	for _, spec := range specs {
		deps := spec.Dependencies
		if deps == nil {
			deps = []string{}
		}
		automations = append(automations, Automation{
			SessionId:         session.ID,
			Name:              spec.Name,
			Description:       optional(spec.Description),
			Language:          spec.Language,
			Code:              spec.Code,
			Dependencies:      datatypes.JSONSlice[string](deps),
			SetupInstructions: optional(spec.SetupInstructions),
			Status:            AutomationReady,
		})
	}
	if len(automations) == 0 {
		return automations, nil
	}

	err := DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&automations).Error; err != nil {
			return err
		}
		return TouchSession(tx, session)
	})
	if err != nil {
		return nil, err
	}
	return automations, nil
}

func ListAutomations(DB *gorm.DB, session *AutomationSession) ([]Automation, error) {
	automations := []Automation{}
	err := DB.Where("session_id = ?", session.ID).
		Order("created_at asc").
		Order("id asc").
		Find(&automations).Error
	return automations, err
}

func GetAutomation(DB *gorm.DB, session *AutomationSession, automationUUID string) (*Automation, error) {
	var automation Automation
	err := DB.Where("uuid = ? AND session_id = ?", automationUUID, session.ID).First(&automation).Error
	if err != nil {
		return nil, translate(err)
	}
	return &automation, nil
}

// MarkAutomationDownloaded is idempotent: downloading twice leaves the same
// status as downloading once.
func MarkAutomationDownloaded(DB *gorm.DB, session *AutomationSession, automation *Automation) error {
	if err := DB.Model(automation).Update("status", AutomationDownloaded).Error; err != nil {
		return err
	}
	automation.Status = AutomationDownloaded
	return TouchSession(DB, session)
}
