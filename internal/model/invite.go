package model

import (
	"time"

	"gorm.io/gorm"
)

type InviteStatus string

const (
	InvitePending  InviteStatus = "PENDING"
	InviteConsumed InviteStatus = "CONSUMED"
	InviteExpired  InviteStatus = "EXPIRED"
)

// AssessmentInvite authorizes one developer to attempt one assessment once.
// Invites are never deleted; they are retained for audit.
// swagger:model AssessmentInvite
type AssessmentInvite struct {
	BaseModel
	DeveloperID  uint         `gorm:"not null;index;uniqueIndex:idx_invites_one_pending" json:"developerId"`
	AssessmentID uint         `gorm:"not null;index;uniqueIndex:idx_invites_one_pending" json:"assessmentId"`
	Status       InviteStatus `gorm:"size:20;not null;default:'PENDING'" json:"status"`
	ConsumedAt   *time.Time   `json:"consumedAt,omitempty"`

	// PendingFlag is true while the invite is open and NULL once it is
	// consumed or expired. NULL rows never collide in the unique index, so
	// the index holds at most one open invite per (developer, assessment)
	// while the audit trail of closed invites can grow freely.
	PendingFlag *bool `gorm:"uniqueIndex:idx_invites_one_pending" json:"-"`
}

func (AssessmentInvite) TableName() string {
	return "assessment_invites"
}

// BeforeCreate stamps the pending flag so every open invite occupies its slot
// in the unique index from the moment it is inserted.
func (i *AssessmentInvite) BeforeCreate(tx *gorm.DB) error {
	if i.Status == "" || i.Status == InvitePending {
		pending := true
		i.PendingFlag = &pending
	}
	return nil
}
